package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quillhq/blog-backend/models"
)

// postSummaryFields limits the preloaded post to the reference shape embedded
// in comment responses.
var postSummaryFields = []string{"id", "title", "cover_image_url"}

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

func (r *CommentRepo) withRefs() *gorm.DB {
	return r.db.
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select(authorSummaryFields)
		}).
		Preload("Post", func(db *gorm.DB) *gorm.DB {
			return db.Select(postSummaryFields)
		})
}

// Add inserts a new comment into the database
func (r *CommentRepo) Add(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// FindByID returns a comment by its ID, or gorm.ErrRecordNotFound.
func (r *CommentRepo) FindByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := r.withRefs().First(&comment, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindAll returns every comment with author and post references populated,
// newest first.
func (r *CommentRepo) FindAll() ([]models.Comment, error) {
	var comments []models.Comment
	err := r.withRefs().Order("created_at DESC").Find(&comments).Error
	return comments, err
}

// FindByPost returns all comments on a post, newest first.
func (r *CommentRepo) FindByPost(postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.withRefs().
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

// FindRecent returns the most recent comments, enriched, up to limit.
func (r *CommentRepo) FindRecent(limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.withRefs().Order("created_at DESC").Limit(limit).Find(&comments).Error
	return comments, err
}

// Count returns the total number of comments.
func (r *CommentRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Count(&count).Error
	return count, err
}

// Delete removes a single comment by id.
func (r *CommentRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Comment{}, "id = ?", id).Error
}

// DeleteByParent removes the direct replies of a comment. One level only:
// replies-to-replies survive and surface as orphans on the next threading pass.
func (r *CommentRepo) DeleteByParent(parentID uuid.UUID) error {
	return r.db.Delete(&models.Comment{}, "parent_comment_id = ?", parentID).Error
}

// DeleteByPost removes every comment on a post.
func (r *CommentRepo) DeleteByPost(postID uuid.UUID) error {
	return r.db.Delete(&models.Comment{}, "post_id = ?", postID).Error
}
