// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/linklift/linklift/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// UserRepository defines operations for user accounts
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByUUID(ctx context.Context, uuid string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error
	Delete(ctx context.Context, userID uint) error
}

// LinkRepository defines operations for short links
type LinkRepository interface {
	Repository[models.Link, models.LinkFilter]
	BySlug(ctx context.Context, slug string) (*models.Link, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*models.Link, error)
	ListIDsByOwner(ctx context.Context, ownerID uint) ([]uint, error)
	UpdateSlug(ctx context.Context, linkID uint, newSlug string) error
	// RegisterClick atomically increments the click counter and stamps
	// last_clicked_at in a single UPDATE.
	RegisterClick(ctx context.Context, linkID uint, clickedAt time.Time) error
	Delete(ctx context.Context, linkID uint) error
	DeleteByOwner(ctx context.Context, ownerID uint) error
}

// ClickEventRepository defines operations for recorded clicks
type ClickEventRepository interface {
	Repository[models.ClickEvent, models.ClickEventFilter]
	ListByLink(ctx context.Context, linkID uint) ([]*models.ClickEvent, error)
	CountByLink(ctx context.Context, linkID uint) (int64, error)
	DeleteByLinkIDs(ctx context.Context, linkIDs []uint) error
}
