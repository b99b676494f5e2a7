// Package businessflow contains the business logic for the application.
package businessflow

import (
	"strings"
	"time"

	"github.com/linklift/linklift/app/dto"
	"github.com/linklift/linklift/models"
	"github.com/linklift/linklift/utils"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for click tracking
type ClientMetadata struct {
	IPAddress   string `json:"ip_address"`
	ForwardedIP string `json:"forwarded_ip,omitempty"`
	UserAgent   string `json:"user_agent"`
	RequestID   string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetForwardedIP sets the address carried in X-Forwarded-For
func (cm *ClientMetadata) SetForwardedIP(forwardedIP string) {
	cm.ForwardedIP = forwardedIP
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ClientIP resolves the visitor's address, preferring the first entry of
// X-Forwarded-For over the transport peer address.
func (cm *ClientMetadata) ClientIP() string {
	if cm == nil {
		return ""
	}
	if cm.ForwardedIP != "" {
		first, _, _ := strings.Cut(cm.ForwardedIP, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	return cm.IPAddress
}

// ToAuthUserDTO converts a user model to AuthUserDTO for authentication responses
func ToAuthUserDTO(user models.User) dto.AuthUserDTO {
	return dto.AuthUserDTO{
		ID:              user.ID,
		UUID:            user.UUID.String(),
		Username:        user.Username,
		Email:           user.Email,
		ProfileImageURL: user.ProfileImageURL,
		CreatedAt:       user.CreatedAt.Format(time.RFC3339),
		LastLoginAt:     utils.FormatTimePtr(user.LastLoginAt),
	}
}

// ToLinkDTO converts a link model to LinkDTO
func ToLinkDTO(link models.Link) dto.LinkDTO {
	return dto.LinkDTO{
		ID:            link.ID,
		Slug:          link.Slug,
		OriginalURL:   link.OriginalURL,
		TotalClicks:   link.TotalClicks,
		CreatedAt:     link.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     link.UpdatedAt.Format(time.RFC3339),
		LastClickedAt: utils.FormatTimePtr(link.LastClickedAt),
	}
}

// ToClickEventDTO converts a click event model to ClickEventDTO
func ToClickEventDTO(event models.ClickEvent) dto.ClickEventDTO {
	return dto.ClickEventDTO{
		ID:          event.ID,
		ClickedAt:   event.ClickedAt.Format(time.RFC3339),
		Continent:   event.Continent,
		CountryCode: event.CountryCode,
		DeviceType:  event.DeviceType,
		OSName:      event.OSName,
		BrowserName: event.BrowserName,
	}
}
