package database

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/quillhq/blog-backend/models"
)

// authorSummaryFields limits the preloaded author to its public projection.
var authorSummaryFields = []string{"id", "name", "profile_image_url", "bio", "role", "created_at", "updated_at"}

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

func (r *BlogPostRepo) withAuthor() *gorm.DB {
	return r.db.Preload("Author", func(db *gorm.DB) *gorm.DB {
		return db.Select(authorSummaryFields)
	})
}

// statusScope translates a PostStatus into a filter predicate. StatusAll adds
// no predicate at all.
func statusScope(status models.PostStatus) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch status {
		case models.StatusPublished:
			return db.Where("is_draft = ?", false)
		case models.StatusDraft:
			return db.Where("is_draft = ?", true)
		default:
			return db
		}
	}
}

// FindPage returns one page of posts matching the status filter, most
// recently updated first.
func (r *BlogPostRepo) FindPage(status models.PostStatus, page, pageSize int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.withAuthor().
		Scopes(statusScope(status)).
		Order("updated_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	return posts, err
}

// Count returns the number of posts matching the status filter.
func (r *BlogPostRepo) Count(status models.PostStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).Scopes(statusScope(status)).Count(&count).Error
	return count, err
}

// FindByID returns a blog post by its ID, or gorm.ErrRecordNotFound.
func (r *BlogPostRepo) FindByID(id uuid.UUID) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.withAuthor().First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindBySlug returns a blog post by its slug, or gorm.ErrRecordNotFound.
func (r *BlogPostRepo) FindBySlug(slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.withAuthor().First(&post, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByTag returns published posts whose tag list contains the exact tag.
func (r *BlogPostRepo) FindByTag(tag string) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.withAuthor().
		Where("is_draft = ?", false).
		Where(datatypes.JSONArrayQuery("tags").Contains(tag)).
		Find(&posts).Error
	return posts, err
}

// Search returns published posts whose title or content contains the query,
// case-insensitively.
func (r *BlogPostRepo) Search(query string) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	pattern := "%" + query + "%"
	err := r.withAuthor().
		Where("is_draft = ?", false).
		Where("title ILIKE ? OR content ILIKE ?", pattern, pattern).
		Find(&posts).Error
	return posts, err
}

// FindTrending returns the top published posts by likes, ties broken by views.
func (r *BlogPostRepo) FindTrending(limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.db.
		Where("is_draft = ?", false).
		Order("likes DESC, views DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// FindTopByViews returns the top published posts by views, ties broken by likes.
func (r *BlogPostRepo) FindTopByViews(limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.db.
		Where("is_draft = ?", false).
		Order("views DESC, likes DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// Add inserts a new blog post into the database
func (r *BlogPostRepo) Add(post *models.BlogPost) error {
	return r.db.Create(post).Error
}

// Update updates an existing blog post in the database
func (r *BlogPostRepo) Update(post *models.BlogPost) error {
	return r.db.Save(post).Error
}

// Delete removes a blog post from the database by id
func (r *BlogPostRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.BlogPost{}, "id = ?", id).Error
}

// IncrementViews bumps the view counter by one as a single SQL update, so
// concurrent increments are never lost.
func (r *BlogPostRepo) IncrementViews(id uuid.UUID) error {
	return r.db.Model(&models.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// IncrementLikes bumps the like counter by one atomically.
func (r *BlogPostRepo) IncrementLikes(id uuid.UUID) error {
	return r.db.Model(&models.BlogPost{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error
}

// CountGeneratedByAI returns the number of AI-generated posts.
func (r *BlogPostRepo) CountGeneratedByAI() (int64, error) {
	var count int64
	err := r.db.Model(&models.BlogPost{}).Where("generated_by_ai = ?", true).Count(&count).Error
	return count, err
}

// SumViews returns the sum of all view counters, 0 when there are no posts.
func (r *BlogPostRepo) SumViews() (int64, error) {
	var total int64
	err := r.db.Model(&models.BlogPost{}).Select("COALESCE(SUM(views), 0)").Scan(&total).Error
	return total, err
}

// SumLikes returns the sum of all like counters, 0 when there are no posts.
func (r *BlogPostRepo) SumLikes() (int64, error) {
	var total int64
	err := r.db.Model(&models.BlogPost{}).Select("COALESCE(SUM(likes), 0)").Scan(&total).Error
	return total, err
}

// ListTagSets returns the tag list of every post, drafts included. Histogram
// construction happens in memory since tags live in a JSON column.
func (r *BlogPostRepo) ListTagSets() ([][]string, error) {
	var posts []models.BlogPost
	if err := r.db.Select("tags").Find(&posts).Error; err != nil {
		return nil, err
	}
	tagSets := make([][]string, 0, len(posts))
	for _, post := range posts {
		tagSets = append(tagSets, post.Tags)
	}
	return tagSets, nil
}
