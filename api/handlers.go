package api

import (
	"github.com/quillhq/blog-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, generator contentGenerator, jwtSecret, adminInviteToken string) *routeHandlers {
	return &routeHandlers{
		authHandler:      newAuthHandler(database.UserRepo(), jwtSecret, adminInviteToken),
		blogPostHandler:  newBlogPostHandler(database.BlogPostRepo(), database.CommentRepo()),
		commentHandler:   newCommentHandler(database.CommentRepo(), database.BlogPostRepo()),
		dashboardHandler: newDashboardHandler(database.BlogPostRepo(), database.CommentRepo()),
		aiHandler:        newAIHandler(generator),
	}
}
