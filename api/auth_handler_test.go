package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/quillhq/blog-backend/models"
)

const (
	testJWTSecret   = "test-secret"
	testInviteToken = "letmein"
)

func newTestAuthHandler(users userStore) authHandler {
	return newAuthHandler(users, testJWTSecret, testInviteToken)
}

func registeredUser(t *testing.T, email, password string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return models.User{
		ID:       uuid.New(),
		Name:     "Existing User",
		Email:    email,
		Password: string(hash),
		Role:     models.RoleMember,
	}
}

func TestRegister(t *testing.T) {
	users := newFakeUserStore()
	h := newTestAuthHandler(users)

	body := strings.NewReader(`{"name": " Maya ", "email": " Maya@Example.COM ", "password": "hunter22"}`)
	rec := httptest.NewRecorder()
	h.register()(rec, httptest.NewRequest(http.MethodPost, "/", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Result().Header.Get("Content-Type"))
	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Maya", resp.Name)
	assert.Equal(t, "maya@example.com", resp.Email)
	assert.Equal(t, models.RoleMember, resp.Role)
	assert.NotEmpty(t, resp.Token)

	// the password hash must never leave the server
	assert.NotContains(t, rec.Body.String(), "hunter22")

	stored, err := users.FindByEmail("maya@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("hunter22")))
}

func TestRegister_AdminInviteToken(t *testing.T) {
	t.Run("matching token grants admin", func(t *testing.T) {
		h := newTestAuthHandler(newFakeUserStore())

		body := strings.NewReader(`{"name": "A", "email": "a@example.com", "password": "secret1", "adminInviteToken": "letmein"}`)
		rec := httptest.NewRecorder()
		h.register()(rec, httptest.NewRequest(http.MethodPost, "/", body))

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp authResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, models.RoleAdmin, resp.Role)
	})

	t.Run("wrong token stays member", func(t *testing.T) {
		h := newTestAuthHandler(newFakeUserStore())

		body := strings.NewReader(`{"name": "B", "email": "b@example.com", "password": "secret1", "adminInviteToken": "nope"}`)
		rec := httptest.NewRecorder()
		h.register()(rec, httptest.NewRequest(http.MethodPost, "/", body))

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp authResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, models.RoleMember, resp.Role)
	})

	t.Run("empty configured token never grants admin", func(t *testing.T) {
		h := newAuthHandler(newFakeUserStore(), testJWTSecret, "")

		body := strings.NewReader(`{"name": "C", "email": "c@example.com", "password": "secret1", "adminInviteToken": ""}`)
		rec := httptest.NewRecorder()
		h.register()(rec, httptest.NewRequest(http.MethodPost, "/", body))

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp authResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, models.RoleMember, resp.Role)
	})
}

func TestRegister_Validation(t *testing.T) {
	h := newTestAuthHandler(newFakeUserStore())

	for name, payload := range map[string]string{
		"missing name":   `{"email": "x@example.com", "password": "secret1"}`,
		"blank name":     `{"name": "   ", "email": "x@example.com", "password": "secret1"}`,
		"missing email":  `{"name": "X", "password": "secret1"}`,
		"short password": `{"name": "X", "email": "x@example.com", "password": "12345"}`,
		"oversized bio":  `{"name": "X", "email": "x@example.com", "password": "secret1", "bio": "` + strings.Repeat("b", 501) + `"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.register()(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	existing := registeredUser(t, "taken@example.com", "original1")
	h := newTestAuthHandler(newFakeUserStore(existing))

	body := strings.NewReader(`{"name": "Copycat", "email": "taken@example.com", "password": "secret1"}`)
	rec := httptest.NewRecorder()
	h.register()(rec, httptest.NewRequest(http.MethodPost, "/", body))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	user := registeredUser(t, "maya@example.com", "hunter22")
	h := newTestAuthHandler(newFakeUserStore(user))

	body := strings.NewReader(`{"email": " MAYA@example.com ", "password": "hunter22"}`)
	rec := httptest.NewRecorder()
	h.login()(rec, httptest.NewRequest(http.MethodPost, "/", body))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, user.ID, resp.ID)

	// token must be a valid HS256 JWT carrying the user id
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(resp.Token, &claims, func(*jwt.Token) (any, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestLogin_BadCredentials(t *testing.T) {
	user := registeredUser(t, "maya@example.com", "hunter22")
	h := newTestAuthHandler(newFakeUserStore(user))

	cases := map[string]string{
		"unknown email":  `{"email": "ghost@example.com", "password": "hunter22"}`,
		"wrong password": `{"email": "maya@example.com", "password": "wrong"}`,
	}

	var bodies []string
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.login()(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload)))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			bodies = append(bodies, rec.Body.String())
		})
	}

	// unknown email and wrong password must be indistinguishable
	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1])
}

func TestProfile(t *testing.T) {
	user := testMember()
	h := newTestAuthHandler(newFakeUserStore(*user))

	req := asUser(httptest.NewRequest(http.MethodGet, "/", nil), user)
	rec := httptest.NewRecorder()
	h.profile()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, user.ID, resp.ID)
}

func TestProfile_Unauthenticated(t *testing.T) {
	h := newTestAuthHandler(newFakeUserStore())

	rec := httptest.NewRecorder()
	h.profile()(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
