package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quillhq/blog-backend/errs"
	"github.com/quillhq/blog-backend/models"
	"github.com/quillhq/blog-backend/services"
)

type commentHandler struct {
	responder Responder
	logger    zerolog.Logger
	comments  commentStore
	posts     blogPostStore
}

func newCommentHandler(comments commentStore, posts blogPostStore) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		comments:  comments,
		posts:     posts,
	}
}

type addCommentRequest struct {
	Content       string     `json:"content"`
	ParentComment *uuid.UUID `json:"parentComment"`
}

// addComment creates a comment on a post for the authenticated user. A
// non-nil parentComment makes it a reply; the parent's existence is not
// checked atomically with the insert.
func (h commentHandler) addComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromCtx(r.Context())
		if user == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authorized"))
			return
		}

		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		if _, err := h.posts.FindByID(postID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog_post", err))
			return
		}

		var req addCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode comment request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("comment", err))
			return
		}

		content := strings.TrimSpace(req.Content)
		if content == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}
		if len(content) > models.MaxCommentLength {
			h.responder.WriteError(w, errs.NewInvalidFieldError("content", "must be at most 1000 characters"))
			return
		}

		comment := models.Comment{
			ID:              uuid.New(),
			PostID:          postID,
			AuthorID:        user.ID,
			Content:         content,
			ParentCommentID: req.ParentComment,
		}

		if err := h.comments.Add(&comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment", err))
			return
		}

		summary := user.Summary()
		response := services.ThreadedComment{
			Comment: comment,
			Author:  &summary,
			Replies: []*services.ThreadedComment{},
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, response)
	}
}

// getAllComments returns every comment threaded into a two-level reply tree.
func (h commentHandler) getAllComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comments, err := h.comments.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comments", err))
			return
		}

		h.responder.WriteJSON(w, services.ThreadComments(comments))
	}
}

// getCommentsByPost returns the threaded comments of a single post.
func (h commentHandler) getCommentsByPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		comments, err := h.comments.FindByPost(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comments", err))
			return
		}

		h.responder.WriteJSON(w, services.ThreadComments(comments))
	}
}

// deleteComment removes a comment and its direct replies. One level only:
// replies-to-replies are left in place and surface as top-level orphans.
// If the reply delete fails after the comment delete succeeded, no
// compensating action is taken.
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, err := uuid.Parse(chi.URLParam(r, "commentID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid commentID"))
			return
		}

		if _, err := h.comments.FindByID(commentID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comment", err))
			return
		}

		if err := h.comments.Delete(commentID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "comment", err))
			return
		}
		if err := h.comments.DeleteByParent(commentID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete replies of", "comment", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"message": "comment and any replies deleted successfully",
		})
	}
}
