package api

import (
	"github.com/google/uuid"

	"github.com/quillhq/blog-backend/database"
	"github.com/quillhq/blog-backend/models"
)

// Store interfaces consumed by the handlers. The database repos satisfy them;
// tests swap in in-memory fakes.

type blogPostStore interface {
	FindPage(status models.PostStatus, page, pageSize int) ([]models.BlogPost, error)
	Count(status models.PostStatus) (int64, error)
	FindByID(id uuid.UUID) (*models.BlogPost, error)
	FindBySlug(slug string) (*models.BlogPost, error)
	FindByTag(tag string) ([]models.BlogPost, error)
	Search(query string) ([]models.BlogPost, error)
	FindTrending(limit int) ([]models.BlogPost, error)
	FindTopByViews(limit int) ([]models.BlogPost, error)
	Add(post *models.BlogPost) error
	Update(post *models.BlogPost) error
	Delete(id uuid.UUID) error
	IncrementViews(id uuid.UUID) error
	IncrementLikes(id uuid.UUID) error
	CountGeneratedByAI() (int64, error)
	SumViews() (int64, error)
	SumLikes() (int64, error)
	ListTagSets() ([][]string, error)
}

type commentStore interface {
	Add(comment *models.Comment) error
	FindByID(id uuid.UUID) (*models.Comment, error)
	FindAll() ([]models.Comment, error)
	FindByPost(postID uuid.UUID) ([]models.Comment, error)
	FindRecent(limit int) ([]models.Comment, error)
	Count() (int64, error)
	Delete(id uuid.UUID) error
	DeleteByParent(parentID uuid.UUID) error
	DeleteByPost(postID uuid.UUID) error
}

type userStore interface {
	Add(user *models.User) error
	FindByID(id uuid.UUID) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
}

var (
	_ blogPostStore = (*database.BlogPostRepo)(nil)
	_ commentStore  = (*database.CommentRepo)(nil)
	_ userStore     = (*database.UserRepo)(nil)
)
