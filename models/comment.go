package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxCommentLength bounds comment content after trimming.
const MaxCommentLength = 1000

// Comment is a single comment on a blog post. A non-nil ParentCommentID makes
// it a reply; the schema allows arbitrary depth but only one level of nesting
// is materialized when comments are threaded for a response.
type Comment struct {
	ID              uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	PostID          uuid.UUID  `json:"postId" db:"post_id" gorm:"type:uuid;not null;index"`
	Post            *BlogPost  `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	AuthorID        uuid.UUID  `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	Author          *User      `json:"-" gorm:"foreignKey:AuthorID;references:ID"`
	Content         string     `json:"content" db:"content" gorm:"type:varchar(1000);not null"`
	ParentCommentID *uuid.UUID `json:"parentComment,omitempty" db:"parent_comment_id" gorm:"type:uuid;index"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}
