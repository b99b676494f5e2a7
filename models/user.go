// Package models contains domain entities and business models for the link shortener
package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_users_uuid" json:"uuid"`

	Username string `gorm:"size:255;not null" json:"username"`
	Email    string `gorm:"size:255;not null;uniqueIndex:uk_users_email" json:"email"`

	PasswordHash string `gorm:"size:255;not null" json:"-"` // Never serialize password hash

	ProfileImageURL *string `gorm:"type:text" json:"profile_image_url,omitempty"`

	CreatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_users_created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// Relations
	Links []Link `gorm:"foreignKey:OwnerID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserFilter represents filter criteria for user queries
type UserFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Username      *string
	Email         *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
