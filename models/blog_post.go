package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PostStatus filters a post listing by publication state.
type PostStatus string

const (
	StatusPublished PostStatus = "published"
	StatusDraft     PostStatus = "draft"
	StatusAll       PostStatus = "all"
)

// ParsePostStatus maps a raw query value onto a PostStatus. Unknown or empty
// values default to published.
func ParsePostStatus(raw string) PostStatus {
	switch PostStatus(raw) {
	case StatusDraft:
		return StatusDraft
	case StatusAll:
		return StatusAll
	default:
		return StatusPublished
	}
}

// BlogPost represents a complete blog post with metadata
type BlogPost struct {
	ID            uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title         string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Slug          string                      `json:"slug" db:"slug" gorm:"type:text;not null;unique"`
	Content       string                      `json:"content" db:"content" gorm:"type:text;not null"`
	CoverImageURL string                      `json:"coverImageUrl" db:"cover_image_url" gorm:"type:text;default:''"`
	Tags          datatypes.JSONSlice[string] `json:"tags" db:"tags" gorm:"type:jsonb"`
	AuthorID      uuid.UUID                   `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	Author        *User                       `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	IsDraft       bool                        `json:"isDraft" db:"is_draft" gorm:"not null;default:false"`
	Views         int                         `json:"views" db:"views" gorm:"type:integer;not null;default:0"`
	Likes         int                         `json:"likes" db:"likes" gorm:"type:integer;not null;default:0"`
	GeneratedByAI bool                        `json:"generatedByAI" db:"generated_by_ai" gorm:"not null;default:false"`
	CreatedAt     time.Time                   `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time                   `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// PostSummary is the projection used by the dashboard top-posts panel and the
// post reference embedded in comments.
type PostSummary struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	CoverImageURL string    `json:"coverImageUrl"`
	Views         int       `json:"views,omitempty"`
	Likes         int       `json:"likes,omitempty"`
}

// Summary projects the post down to dashboard/comment shape.
func (p BlogPost) Summary() PostSummary {
	return PostSummary{
		ID:            p.ID,
		Title:         p.Title,
		CoverImageURL: p.CoverImageURL,
		Views:         p.Views,
		Likes:         p.Likes,
	}
}
