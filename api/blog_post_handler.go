package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/quillhq/blog-backend/errs"
	"github.com/quillhq/blog-backend/models"
	"github.com/quillhq/blog-backend/services"
)

// pageSize is the fixed listing window; trendingLimit caps the top-posts view.
const (
	pageSize      = 5
	trendingLimit = 5
)

type blogPostHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     blogPostStore
	comments  commentStore
}

func newBlogPostHandler(posts blogPostStore, comments commentStore) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
		comments:  comments,
	}
}

// tabCounts are the all/published/draft navigation counts returned alongside
// every listing page, always computed over the unfiltered set.
type tabCounts struct {
	All       int64 `json:"all"`
	Published int64 `json:"published"`
	Draft     int64 `json:"draft"`
}

type postListResponse struct {
	Posts      []models.BlogPost `json:"posts"`
	Page       int               `json:"page"`
	TotalPages int64             `json:"totalPages"`
	TotalCount int64             `json:"totalCount"`
	Counts     tabCounts         `json:"counts"`
}

type createPostRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	CoverImageURL string   `json:"coverImageUrl"`
	Tags          []string `json:"tags"`
	IsDraft       bool     `json:"isDraft"`
	GeneratedByAI bool     `json:"generatedByAI"`
}

// updatePostRequest carries a partial merge: only non-nil fields are applied.
type updatePostRequest struct {
	Title         *string   `json:"title"`
	Content       *string   `json:"content"`
	CoverImageURL *string   `json:"coverImageUrl"`
	Tags          *[]string `json:"tags"`
	IsDraft       *bool     `json:"isDraft"`
	GeneratedByAI *bool     `json:"generatedByAI"`
}

// listPosts returns one page of posts filtered by status, plus pagination
// metadata and the three tab counts. The four counts have no data dependency
// on each other, so they are issued concurrently.
func (h blogPostHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := models.ParsePostStatus(r.URL.Query().Get("status"))
		page := queryInt(r, "page", 1)
		if page < 1 {
			page = 1
		}

		posts, err := h.posts.FindPage(status, page, pageSize)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find page of", "blog_posts", err))
			return
		}

		var (
			totalCount, allCount, publishedCount, draftCount int64
			countErrs                                        [4]error
			wg                                               sync.WaitGroup
		)
		countQueries := []struct {
			status models.PostStatus
			dest   *int64
			errAt  int
		}{
			{status, &totalCount, 0},
			{models.StatusAll, &allCount, 1},
			{models.StatusPublished, &publishedCount, 2},
			{models.StatusDraft, &draftCount, 3},
		}
		for _, q := range countQueries {
			wg.Add(1)
			go func() {
				defer wg.Done()
				*q.dest, countErrs[q.errAt] = h.posts.Count(q.status)
			}()
		}
		wg.Wait()
		for _, err := range countErrs {
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("count", "blog_posts", err))
				return
			}
		}

		if posts == nil {
			posts = []models.BlogPost{}
		}

		h.responder.WriteJSON(w, postListResponse{
			Posts:      posts,
			Page:       page,
			TotalPages: (totalCount + pageSize - 1) / pageSize,
			TotalCount: totalCount,
			Counts: tabCounts{
				All:       allCount,
				Published: publishedCount,
				Draft:     draftCount,
			},
		})
	}
}

// getPostBySlug returns a single post by its slug, author enriched.
func (h blogPostHandler) getPostBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		post, err := h.posts.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// getPostsByTag returns published posts carrying the exact tag.
func (h blogPostHandler) getPostsByTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := chi.URLParam(r, "tag")
		if tag == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing tag"))
			return
		}

		posts, err := h.posts.FindByTag(tag)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tagged", "blog_posts", err))
			return
		}
		if posts == nil {
			posts = []models.BlogPost{}
		}

		h.responder.WriteJSON(w, posts)
	}
}

// searchPosts matches a case-insensitive substring in title or content of
// published posts.
func (h blogPostHandler) searchPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")

		posts, err := h.posts.Search(query)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search", "blog_posts", err))
			return
		}
		if posts == nil {
			posts = []models.BlogPost{}
		}

		h.responder.WriteJSON(w, posts)
	}
}

// getTopPosts returns the top published posts by likes, then views.
func (h blogPostHandler) getTopPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.posts.FindTrending(trendingLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find trending", "blog_posts", err))
			return
		}
		if posts == nil {
			posts = []models.BlogPost{}
		}

		h.responder.WriteJSON(w, posts)
	}
}

// createPost creates a new post for the authenticated admin. The slug is
// derived from the title; a colliding slug surfaces as a conflict from the
// storage layer's uniqueness constraint.
func (h blogPostHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromCtx(r.Context())
		if user == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authorized"))
			return
		}

		var req createPostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("blog post", err))
			return
		}

		if req.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if req.Content == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("content"))
			return
		}

		post := models.BlogPost{
			ID:            uuid.New(),
			Title:         req.Title,
			Slug:          services.Slugify(req.Title),
			Content:       req.Content,
			CoverImageURL: req.CoverImageURL,
			Tags:          datatypes.NewJSONSlice(req.Tags),
			AuthorID:      user.ID,
			IsDraft:       req.IsDraft,
			GeneratedByAI: req.GeneratedByAI,
		}

		if err := h.posts.Add(&post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "blog_post", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, post)
	}
}

// updatePost applies a partial merge to an existing post. Only the original
// author or an admin may update; the slug is re-derived only when the title
// is part of the payload.
func (h blogPostHandler) updatePost() http.HandlerFunc {
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

		post, err := h.posts.FindByID(postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog_post", err))
			return
		}

		if post.AuthorID != user.ID && !user.IsAdmin() {
			h.responder.WriteError(w, errs.NewUnauthorizedError("not authorized to update this post"))
			return
		}

		var req updatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("blog post", err))
			return
		}

		if req.Title != nil {
			post.Title = *req.Title
			post.Slug = services.Slugify(*req.Title)
		}
		if req.Content != nil {
			post.Content = *req.Content
		}
		if req.CoverImageURL != nil {
			post.CoverImageURL = *req.CoverImageURL
		}
		if req.Tags != nil {
			post.Tags = datatypes.NewJSONSlice(*req.Tags)
		}
		if req.IsDraft != nil {
			post.IsDraft = *req.IsDraft
		}
		if req.GeneratedByAI != nil {
			post.GeneratedByAI = *req.GeneratedByAI
		}

		if err := h.posts.Update(post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// deletePost removes a post and its comments. Comment removal is a separate
// step with no compensating action if the post delete then fails.
func (h blogPostHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		if _, err := h.posts.FindByID(postID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blog_post", err))
			return
		}

		if err := h.comments.DeleteByPost(postID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete comments of", "blog_post", err))
			return
		}
		if err := h.posts.Delete(postID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"message": "post deleted successfully",
		})
	}
}

// incrementView bumps the view counter. Repeated calls always increment.
func (h blogPostHandler) incrementView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		if err := h.posts.IncrementViews(postID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("increment views of", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"message": "view count incremented successfully",
		})
	}
}

// likePost bumps the like counter.
func (h blogPostHandler) likePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuid.Parse(chi.URLParam(r, "postID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
			return
		}

		if err := h.posts.IncrementLikes(postID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("increment likes of", "blog_post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"message": "like count incremented successfully",
		})
	}
}

// queryInt reads an integer query parameter, falling back on absence or junk.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}
