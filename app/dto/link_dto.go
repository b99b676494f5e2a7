package dto

// CreateLinkRequest represents the request payload for shortening a URL.
// CustomSlug is optional: when present the caller picks the slug, otherwise
// one is generated.
type CreateLinkRequest struct {
	OriginalURL string  `json:"originalUrl" validate:"required,url,max=2048" example:"https://example.com/some/long/path"`
	CustomSlug  *string `json:"customSlug,omitempty" validate:"omitempty,min=3,max=64,alphanum_slug" example:"my-launch"`
}

// EditSlugRequest represents the request payload for renaming a link's slug
type EditSlugRequest struct {
	NewSlug string `json:"newSlug" validate:"required,min=3,max=64,alphanum_slug" example:"spring-sale"`
}

// LinkDTO represents a short link in API responses
type LinkDTO struct {
	ID            uint    `json:"id" example:"42"`
	Slug          string  `json:"slug" example:"x7Kp2mQ9"`
	OriginalURL   string  `json:"original_url" example:"https://example.com/some/long/path"`
	TotalClicks   int64   `json:"total_clicks" example:"17"`
	CreatedAt     string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt     string  `json:"updated_at" example:"2024-01-15T10:30:00Z"`
	LastClickedAt *string `json:"last_clicked_at,omitempty"`
}

// CreateLinkResponse represents the response after shortening a URL
type CreateLinkResponse struct {
	Link LinkDTO `json:"link"`
}

// ListLinksResponse represents the authenticated user's links
type ListLinksResponse struct {
	Links []LinkDTO `json:"links"`
	Total int       `json:"total" example:"3"`
}

// VisitResponse carries the destination of a resolved slug. The frontend
// performs the actual navigation.
type VisitResponse struct {
	URL string `json:"url" example:"https://example.com/some/long/path"`
}

// Common error codes for link operations
const (
	ErrorLinkNotFound      = "LINK_NOT_FOUND"
	ErrorSlugAlreadyExists = "SLUG_ALREADY_EXISTS"
	ErrorLinkNotOwned      = "LINK_NOT_OWNED"
	ErrorSlugExhausted     = "SLUG_GENERATION_EXHAUSTED"
)
