package dto

// ClickEventDTO represents a single recorded visit in analytics responses
type ClickEventDTO struct {
	ID          uint   `json:"id" example:"7"`
	ClickedAt   string `json:"clicked_at" example:"2024-01-15T10:30:00Z"`
	Continent   string `json:"continent" example:"Europe"`
	CountryCode string `json:"country_code" example:"DE"`
	DeviceType  string `json:"device_type" example:"Mobile"`
	OSName      string `json:"os_name" example:"Android"`
	BrowserName string `json:"browser_name" example:"Chrome"`
}

// AnalyticsSummaryDTO aggregates recorded clicks per dimension.
// TotalClicks comes from the link's counter and may exceed RecordedClicks
// when enrichment rows were dropped.
type AnalyticsSummaryDTO struct {
	TotalClicks    int64            `json:"total_clicks" example:"17"`
	RecordedClicks int64            `json:"recorded_clicks" example:"15"`
	ByCountry      map[string]int64 `json:"by_country"`
	ByContinent    map[string]int64 `json:"by_continent"`
	ByDevice       map[string]int64 `json:"by_device"`
	ByOS           map[string]int64 `json:"by_os"`
	ByBrowser      map[string]int64 `json:"by_browser"`
}

// LinkAnalyticsResponse represents the full analytics view of one link
type LinkAnalyticsResponse struct {
	Link      LinkDTO             `json:"link"`
	Analytics []ClickEventDTO     `json:"analytics"`
	Summary   AnalyticsSummaryDTO `json:"summary"`
}
