package api

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quillhq/blog-backend/models"
	"github.com/quillhq/blog-backend/services"
)

const (
	topPostsLimit       = 5
	recentCommentsLimit = 5
)

type dashboardHandler struct {
	responder Responder
	logger    zerolog.Logger
	posts     blogPostStore
	comments  commentStore
}

func newDashboardHandler(posts blogPostStore, comments commentStore) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder: NewResponder(logger),
		logger:    logger,
		posts:     posts,
		comments:  comments,
	}
}

type dashboardStats struct {
	TotalPosts    int64 `json:"totalPosts"`
	Drafts        int64 `json:"drafts"`
	Published     int64 `json:"published"`
	TotalComments int64 `json:"totalComments"`
	AIGenerated   int64 `json:"aiGenerated"`
	TotalViews    int64 `json:"totalViews"`
	TotalLikes    int64 `json:"totalLikes"`
}

type dashboardSummary struct {
	Stats          dashboardStats              `json:"stats"`
	TopPosts       []models.PostSummary        `json:"topPosts"`
	RecentComments []*services.ThreadedComment `json:"recentComments"`
	TagUsage       []services.TagCount         `json:"tagUsage"`
}

// getSummary assembles the dashboard: counters, view/like sums, top posts by
// views, most recent comments, and the tag histogram. The reads are
// independent point-in-time queries issued concurrently; no cross-read
// atomicity is guaranteed.
func (h dashboardHandler) getSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			stats    dashboardStats
			topPosts []models.BlogPost
			recent   []models.Comment
			tagSets  [][]string
			loadErrs [10]error
			wg       sync.WaitGroup
		)

		loaders := []func(){
			func() { stats.TotalPosts, loadErrs[0] = h.posts.Count(models.StatusAll) },
			func() { stats.Drafts, loadErrs[1] = h.posts.Count(models.StatusDraft) },
			func() { stats.Published, loadErrs[2] = h.posts.Count(models.StatusPublished) },
			func() { stats.TotalComments, loadErrs[3] = h.comments.Count() },
			func() { stats.AIGenerated, loadErrs[4] = h.posts.CountGeneratedByAI() },
			func() { stats.TotalViews, loadErrs[5] = h.posts.SumViews() },
			func() { stats.TotalLikes, loadErrs[6] = h.posts.SumLikes() },
			func() { topPosts, loadErrs[7] = h.posts.FindTopByViews(topPostsLimit) },
			func() { recent, loadErrs[8] = h.comments.FindRecent(recentCommentsLimit) },
			func() { tagSets, loadErrs[9] = h.posts.ListTagSets() },
		}
		for _, load := range loaders {
			wg.Add(1)
			go func() {
				defer wg.Done()
				load()
			}()
		}
		wg.Wait()

		for _, err := range loadErrs {
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("aggregate", "dashboard summary", err))
				return
			}
		}

		summaries := make([]models.PostSummary, 0, len(topPosts))
		for _, post := range topPosts {
			summaries = append(summaries, post.Summary())
		}

		h.responder.WriteJSON(w, dashboardSummary{
			Stats:          stats,
			TopPosts:       summaries,
			RecentComments: services.EnrichComments(recent),
			TagUsage:       services.TagHistogram(tagSets),
		})
	}
}
