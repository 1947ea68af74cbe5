package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/quillhq/blog-backend/errs"
	"github.com/quillhq/blog-backend/models"
)

const tokenLifetime = 7 * 24 * time.Hour

type authHandler struct {
	responder        Responder
	logger           zerolog.Logger
	users            userStore
	jwtSecret        []byte
	adminInviteToken string
}

func newAuthHandler(users userStore, jwtSecret, adminInviteToken string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		users:            users,
		jwtSecret:        []byte(jwtSecret),
		adminInviteToken: adminInviteToken,
	}
}

type registerRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	ProfileImageURL  string `json:"profileImageUrl"`
	Bio              string `json:"bio"`
	AdminInviteToken string `json:"adminInviteToken"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	models.User
	Token string `json:"token"`
}

func (h authHandler) signToken(userID uuid.UUID) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.jwtSecret)
}

// register creates an account. The role is member unless the configured
// admin invite token is presented.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("registration", err))
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		switch {
		case req.Name == "":
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		case req.Email == "":
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		case len(req.Password) < 6:
			h.responder.WriteError(w, errs.NewInvalidFieldError("password", "must be at least 6 characters"))
			return
		case len(req.Bio) > 500:
			h.responder.WriteError(w, errs.NewInvalidFieldError("bio", "must be at most 500 characters"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to hash password"))
			return
		}

		role := models.RoleMember
		if h.adminInviteToken != "" && req.AdminInviteToken == h.adminInviteToken {
			role = models.RoleAdmin
		}

		user := models.User{
			ID:              uuid.New(),
			Name:            req.Name,
			Email:           req.Email,
			Password:        string(hash),
			ProfileImageURL: req.ProfileImageURL,
			Bio:             req.Bio,
			Role:            role,
		}

		if err := h.users.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		token, err := h.signToken(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to sign token"))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, authResponse{User: user, Token: token})
	}
}

// login exchanges valid credentials for a JWT.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("login", err))
			return
		}

		user, err := h.users.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			// Invalid email and wrong password answer identically.
			if errsIsNotFound(err) {
				h.responder.WriteError(w, errs.NewUnauthorizedError("invalid email or password"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid email or password"))
			return
		}

		token, err := h.signToken(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to sign token"))
			return
		}

		h.responder.WriteJSON(w, authResponse{User: *user, Token: token})
	}
}

// profile returns the authenticated user.
func (h authHandler) profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromCtx(r.Context())
		if user == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authorized"))
			return
		}
		h.responder.WriteJSON(w, user)
	}
}

func errsIsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errs.IsNotFound(err)
}
