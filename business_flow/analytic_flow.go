package businessflow

import (
	"context"

	"github.com/linklift/linklift/app/dto"
	"github.com/linklift/linklift/repository"
)

// AnalyticFlow exposes the recorded click analytics of an owned link
type AnalyticFlow interface {
	GetLinkAnalytics(ctx context.Context, linkID uint, userID uint) (*dto.LinkAnalyticsResponse, error)
}

// AnalyticFlowImpl implements the analytics business flow
type AnalyticFlowImpl struct {
	linkRepo  repository.LinkRepository
	clickRepo repository.ClickEventRepository
}

// NewAnalyticFlow creates a new analytic flow instance
func NewAnalyticFlow(
	linkRepo repository.LinkRepository,
	clickRepo repository.ClickEventRepository,
) AnalyticFlow {
	return &AnalyticFlowImpl{
		linkRepo:  linkRepo,
		clickRepo: clickRepo,
	}
}

// GetLinkAnalytics returns the link, its recorded clicks newest first, and
// per-dimension aggregates. TotalClicks in the summary comes from the link
// counter, so it can exceed the number of recorded rows.
func (af *AnalyticFlowImpl) GetLinkAnalytics(ctx context.Context, linkID uint, userID uint) (*dto.LinkAnalyticsResponse, error) {
	link, err := af.linkRepo.ByID(ctx, linkID)
	if err != nil {
		return nil, NewBusinessError("LINK_LOOKUP_FAILED", "Failed to lookup link", err)
	}
	if link == nil {
		return nil, ErrLinkNotFound
	}
	if !link.IsOwnedBy(userID) {
		return nil, ErrLinkNotOwned
	}

	events, err := af.clickRepo.ListByLink(ctx, link.ID)
	if err != nil {
		return nil, NewBusinessError("ANALYTICS_LOOKUP_FAILED", "Failed to load analytics", err)
	}

	resp := &dto.LinkAnalyticsResponse{
		Link:      ToLinkDTO(*link),
		Analytics: make([]dto.ClickEventDTO, 0, len(events)),
		Summary: dto.AnalyticsSummaryDTO{
			TotalClicks:    link.TotalClicks,
			RecordedClicks: int64(len(events)),
			ByCountry:      make(map[string]int64),
			ByContinent:    make(map[string]int64),
			ByDevice:       make(map[string]int64),
			ByOS:           make(map[string]int64),
			ByBrowser:      make(map[string]int64),
		},
	}

	for _, event := range events {
		resp.Analytics = append(resp.Analytics, ToClickEventDTO(*event))
		resp.Summary.ByCountry[event.CountryCode]++
		resp.Summary.ByContinent[event.Continent]++
		resp.Summary.ByDevice[event.DeviceType]++
		resp.Summary.ByOS[event.OSName]++
		resp.Summary.ByBrowser[event.BrowserName]++
	}

	return resp, nil
}
