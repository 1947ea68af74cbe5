package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// setupRoutes mounts the full API surface under /api. Public reads are
// unauthenticated; mutations require a verified identity and the indicated
// role.
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", healthCheck)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handlers.authHandler.register())
			r.Post("/login", handlers.authHandler.login())
			r.With(auth.authenticate).Get("/profile", handlers.authHandler.profile())
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", handlers.blogPostHandler.listPosts())
			r.Get("/slug/{slug}", handlers.blogPostHandler.getPostBySlug())
			r.Get("/tag/{tag}", handlers.blogPostHandler.getPostsByTag())
			r.Get("/search", handlers.blogPostHandler.searchPosts())
			r.Get("/trending", handlers.blogPostHandler.getTopPosts())

			r.Group(func(r chi.Router) {
				r.Use(auth.authenticate)
				r.With(auth.adminOnly).Post("/", handlers.blogPostHandler.createPost())
				r.Put("/{postID}", handlers.blogPostHandler.updatePost())
				r.With(auth.adminOnly).Delete("/{postID}", handlers.blogPostHandler.deletePost())
				r.Put("/{postID}/view", handlers.blogPostHandler.incrementView())
				r.Put("/{postID}/like", handlers.blogPostHandler.likePost())
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/", handlers.commentHandler.getAllComments())
			r.Get("/{postID}", handlers.commentHandler.getCommentsByPost())
			r.With(auth.authenticate).Post("/{postID}", handlers.commentHandler.addComment())
			r.With(auth.authenticate).Delete("/{commentID}", handlers.commentHandler.deleteComment())
		})

		r.With(auth.authenticate, auth.adminOnly).
			Get("/dashboard-summary", handlers.dashboardHandler.getSummary())

		r.Route("/ai", func(r chi.Router) {
			r.With(auth.authenticate).Post("/generate", handlers.aiHandler.generateBlogPost())
			r.With(auth.authenticate).Post("/generate-ideas", handlers.aiHandler.generateBlogPostIdeas())
			r.With(auth.authenticate).Post("/generate-reply", handlers.aiHandler.generateCommentReply())
			r.Post("/generate-summary", handlers.aiHandler.generatePostSummary())
		})
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	NewResponder(log.Logger).WriteJSON(w, map[string]string{
		"message":   "API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
