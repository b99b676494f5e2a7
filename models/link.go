package models

import "time"

// Link represents a shortened link record
// Slug is the short unique token that maps to the original URL
// OwnerID is optional (nullable): links may be created anonymously,
// and an ownerless link can never be edited or deleted
type Link struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Slug        string  `gorm:"size:64;not null;uniqueIndex:uk_links_slug" json:"slug"`
	OriginalURL string  `gorm:"type:text;not null" json:"original_url"`
	TotalClicks int64   `gorm:"not null;default:0" json:"total_clicks"`
	OwnerID     *uint   `gorm:"index:idx_links_owner_id" json:"owner_id,omitempty"`
	Owner       *User   `gorm:"foreignKey:OwnerID;references:ID" json:"-"`

	CreatedAt     time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_links_created_at" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
	LastClickedAt *time.Time `json:"last_clicked_at,omitempty"` // nil until first click

	// Relations
	ClickEvents []ClickEvent `gorm:"foreignKey:LinkID" json:"-"`
}

// TableName returns the table name for Link
func (Link) TableName() string { return "links" }

// IsOwnedBy reports whether the link belongs to the given user.
// Anonymous links belong to nobody.
func (l *Link) IsOwnedBy(userID uint) bool {
	return l.OwnerID != nil && *l.OwnerID == userID
}

// LinkFilter provides filter fields for repository queries
type LinkFilter struct {
	ID            *uint
	Slug          *string
	OwnerID       *uint
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
