package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/blog-backend/models"
	"github.com/quillhq/blog-backend/services"
)

func seedComment(postID uuid.UUID, parent *uuid.UUID, age time.Duration) models.Comment {
	return models.Comment{
		ID:              uuid.New(),
		PostID:          postID,
		AuthorID:        uuid.New(),
		Content:         "a comment",
		ParentCommentID: parent,
		CreatedAt:       time.Now().Add(-age),
	}
}

func TestAddComment(t *testing.T) {
	post := testPost("Commentable", false, time.Hour)
	comments := newFakeCommentStore()
	h := newCommentHandler(comments, newFakePostStore(post))

	body := strings.NewReader(`{"content": "  nice post  "}`)
	req := asUser(withURLParam(httptest.NewRequest(http.MethodPost, "/", body), "postID", post.ID.String()), testMember())
	rec := httptest.NewRecorder()
	h.addComment()(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Result().Header.Get("Content-Type"))
	var created services.ThreadedComment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "nice post", created.Content)
	assert.NotNil(t, created.Author)

	count, _ := comments.Count()
	assert.Equal(t, int64(1), count)
}

func TestAddComment_PostMustExist(t *testing.T) {
	h := newCommentHandler(newFakeCommentStore(), newFakePostStore())

	body := strings.NewReader(`{"content": "into the void"}`)
	req := asUser(withURLParam(httptest.NewRequest(http.MethodPost, "/", body), "postID", uuid.NewString()), testMember())
	rec := httptest.NewRecorder()
	h.addComment()(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddComment_ContentValidation(t *testing.T) {
	post := testPost("Commentable", false, time.Hour)
	h := newCommentHandler(newFakeCommentStore(), newFakePostStore(post))

	for name, payload := range map[string]string{
		"empty":     `{"content": ""}`,
		"blank":     `{"content": "   "}`,
		"too large": `{"content": "` + strings.Repeat("x", models.MaxCommentLength+1) + `"}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := asUser(withURLParam(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload)), "postID", post.ID.String()), testMember())
			rec := httptest.NewRecorder()
			h.addComment()(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetCommentsByPost_Threaded(t *testing.T) {
	postID := uuid.New()
	parent := seedComment(postID, nil, 3*time.Hour)
	reply := seedComment(postID, &parent.ID, 2*time.Hour)
	otherPost := seedComment(uuid.New(), nil, time.Hour)
	h := newCommentHandler(newFakeCommentStore(parent, reply, otherPost), newFakePostStore())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "postID", postID.String())
	rec := httptest.NewRecorder()
	h.getCommentsByPost()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var threaded []*services.ThreadedComment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &threaded))
	require.Len(t, threaded, 1)
	assert.Equal(t, parent.ID, threaded[0].ID)
	require.Len(t, threaded[0].Replies, 1)
	assert.Equal(t, reply.ID, threaded[0].Replies[0].ID)
}

func TestGetAllComments_SpansPosts(t *testing.T) {
	a := seedComment(uuid.New(), nil, 2*time.Hour)
	b := seedComment(uuid.New(), nil, time.Hour)
	h := newCommentHandler(newFakeCommentStore(a, b), newFakePostStore())

	req := httptest.NewRequest(http.MethodGet, "/api/comments", nil)
	rec := httptest.NewRecorder()
	h.getAllComments()(rec, req)

	var threaded []*services.ThreadedComment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &threaded))
	require.Len(t, threaded, 2)
	// newest first
	assert.Equal(t, b.ID, threaded[0].ID)
	assert.Equal(t, a.ID, threaded[1].ID)
}

func TestDeleteComment_RemovesDirectRepliesOnly(t *testing.T) {
	postID := uuid.New()
	target := seedComment(postID, nil, 4*time.Hour)
	replyA := seedComment(postID, &target.ID, 3*time.Hour)
	replyB := seedComment(postID, &target.ID, 2*time.Hour)
	grandchild := seedComment(postID, &replyA.ID, time.Hour)
	comments := newFakeCommentStore(target, replyA, replyB, grandchild)
	h := newCommentHandler(comments, newFakePostStore())

	req := asUser(withURLParam(httptest.NewRequest(http.MethodDelete, "/", nil), "commentID", target.ID.String()), testMember())
	rec := httptest.NewRecorder()
	h.deleteComment()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	count, _ := comments.Count()
	assert.Equal(t, int64(1), count)

	// the surviving grandchild is promoted to top level on the next pass
	remaining, _ := comments.FindByPost(postID)
	threaded := services.ThreadComments(remaining)
	require.Len(t, threaded, 1)
	assert.Equal(t, grandchild.ID, threaded[0].ID)
	assert.Empty(t, threaded[0].Replies)
}

func TestDeleteComment_NotFound(t *testing.T) {
	h := newCommentHandler(newFakeCommentStore(), newFakePostStore())

	req := asUser(withURLParam(httptest.NewRequest(http.MethodDelete, "/", nil), "commentID", uuid.NewString()), testMember())
	rec := httptest.NewRecorder()
	h.deleteComment()(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
