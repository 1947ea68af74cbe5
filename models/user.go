package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Role is constrained to exactly these two values.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User represents a registered account. The password hash is never serialized.
type User struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name            string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email           string    `json:"email" db:"email" gorm:"type:text;not null;unique"`
	Password        string    `json:"-" db:"password" gorm:"type:text;not null"`
	ProfileImageURL string    `json:"profileImageUrl" db:"profile_image_url" gorm:"type:text;default:''"`
	Bio             string    `json:"bio" db:"bio" gorm:"type:varchar(500);default:''"`
	Role            string    `json:"role" db:"role" gorm:"type:text;not null;default:'member'"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserSummary is the author projection embedded in posts and comments.
type UserSummary struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	ProfileImageURL string    `json:"profileImageUrl"`
}

// Summary projects the user down to the fields exposed on authored content.
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:              u.ID,
		Name:            u.Name,
		ProfileImageURL: u.ProfileImageURL,
	}
}
