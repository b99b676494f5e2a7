package services

import (
	"strings"

	"github.com/linklift/linklift/models"
	"github.com/mileusna/useragent"
)

// DeviceInfo holds the classification of a visitor's user agent
type DeviceInfo struct {
	DeviceType  string `json:"device_type"`
	OSName      string `json:"os_name"`
	BrowserName string `json:"browser_name"`
}

// DetectionService classifies raw User-Agent strings.
// Every field falls back to the unknown sentinel rather than staying empty.
type DetectionService interface {
	Detect(rawUserAgent string) DeviceInfo
}

// DetectionServiceImpl implements DetectionService on top of a UA parser
type DetectionServiceImpl struct{}

// NewDetectionService creates a new detection service
func NewDetectionService() DetectionService {
	return &DetectionServiceImpl{}
}

// Detect parses the user agent and classifies device, OS and browser
func (s *DetectionServiceImpl) Detect(rawUserAgent string) DeviceInfo {
	info := DeviceInfo{
		DeviceType:  models.UnknownValue,
		OSName:      models.UnknownValue,
		BrowserName: models.UnknownValue,
	}

	if strings.TrimSpace(rawUserAgent) == "" {
		return info
	}

	ua := useragent.Parse(rawUserAgent)

	switch {
	case ua.Bot:
		info.DeviceType = "Bot"
	case ua.Mobile:
		info.DeviceType = "Mobile"
	case ua.Tablet:
		info.DeviceType = "Tablet"
	case ua.Desktop:
		info.DeviceType = "Desktop"
	}

	if ua.OS != "" {
		info.OSName = ua.OS
	}
	if ua.Name != "" {
		info.BrowserName = ua.Name
	}

	return info
}
