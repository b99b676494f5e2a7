package models

import "time"

// UnknownValue is the sentinel stored when a best-effort enrichment
// collaborator fails or returns nothing for a field.
const UnknownValue = "Unknown"

// ClickEvent represents a single recorded visit to a short link.
// The classification fields are best-effort and default to UnknownValue.
// Rows are removed by the database cascade when their link is deleted.
type ClickEvent struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	LinkID uint `gorm:"not null;index:idx_click_events_link_id" json:"link_id"`

	ClickedAt   time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_click_events_clicked_at" json:"clicked_at"`
	Continent   string    `gorm:"size:32;not null;default:'Unknown'" json:"continent"`
	CountryCode string    `gorm:"size:32;not null;default:'Unknown'" json:"country_code"`
	DeviceType  string    `gorm:"size:32;not null;default:'Unknown'" json:"device_type"`
	OSName      string    `gorm:"size:64;not null;default:'Unknown';column:os_name" json:"os_name"`
	BrowserName string    `gorm:"size:64;not null;default:'Unknown'" json:"browser_name"`
}

// TableName returns the table name for ClickEvent
func (ClickEvent) TableName() string { return "click_events" }

// ClickEventFilter provides filter fields for repository queries
type ClickEventFilter struct {
	ID            *uint
	LinkID        *uint
	CountryCode   *string
	ClickedAfter  *time.Time
	ClickedBefore *time.Time
}
