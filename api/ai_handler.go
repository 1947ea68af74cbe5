package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quillhq/blog-backend/errs"
	"github.com/quillhq/blog-backend/services"
)

// contentGenerator is the slice of services.AIClient the handler needs;
// tests substitute a canned generator.
type contentGenerator interface {
	Generate(ctx context.Context, prompt string) (services.Generation, error)
	GenerateJSON(ctx context.Context, prompt string) (json.RawMessage, error)
}

var _ contentGenerator = (*services.AIClient)(nil)

type aiHandler struct {
	responder Responder
	logger    zerolog.Logger
	generator contentGenerator
}

func newAIHandler(generator contentGenerator) aiHandler {
	logger := log.With().Str("handlerName", "aiHandler").Logger()

	return aiHandler{
		responder: NewResponder(logger),
		logger:    logger,
		generator: generator,
	}
}

type generatePostRequest struct {
	Title string `json:"title"`
	Tone  string `json:"tone"`
}

type generateIdeasRequest struct {
	Topics string `json:"topics"`
}

type commentAuthorRef struct {
	Name string `json:"name"`
}

type generateReplyRequest struct {
	Author  *commentAuthorRef `json:"author"`
	Content string            `json:"content"`
}

type generateSummaryRequest struct {
	Content string `json:"content"`
}

// generateBlogPost drafts a markdown post from a title and tone.
func (h aiHandler) generateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("generation request", err))
			return
		}
		if req.Title == "" || req.Tone == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("please provide title and tone"))
			return
		}

		gen, err := h.generator.Generate(r.Context(), services.BlogPostPrompt(req.Title, req.Tone))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"content": gen.Text})
	}
}

// generateBlogPostIdeas produces a JSON list of post ideas for a topic. The
// model is instructed to answer with bare JSON; fenced output is tolerated.
func (h aiHandler) generateBlogPostIdeas() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateIdeasRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("generation request", err))
			return
		}
		if req.Topics == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("please provide topics"))
			return
		}

		ideas, err := h.generator.GenerateJSON(r.Context(), services.BlogPostIdeasPrompt(req.Topics))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ideas)
	}
}

// generateCommentReply drafts a reply to a reader's comment.
func (h aiHandler) generateCommentReply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateReplyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("generation request", err))
			return
		}
		if req.Content == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("please provide content"))
			return
		}

		authorName := ""
		if req.Author != nil {
			authorName = req.Author.Name
		}

		gen, err := h.generator.Generate(r.Context(), services.CommentReplyPrompt(authorName, req.Content, ""))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{"content": gen.Text})
	}
}

// generatePostSummary digests post content into a JSON {title, summary}.
func (h aiHandler) generatePostSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateSummaryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("generation request", err))
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("please provide blog content"))
			return
		}

		summary, err := h.generator.GenerateJSON(r.Context(), services.BlogSummaryPrompt(req.Content))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, summary)
	}
}
