package businessflow

import (
	"context"
	"strings"

	"github.com/linklift/linklift/app/dto"
	"github.com/linklift/linklift/app/services"
	"github.com/linklift/linklift/models"
	"github.com/linklift/linklift/repository"
	"github.com/linklift/linklift/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	redirectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linklift_redirects_total",
		Help: "Total slug resolutions by result",
	}, []string{"result"})

	clickEventsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linklift_click_events_dropped_total",
		Help: "Click events lost because the analytics row could not be written",
	})
)

// RedirectFlow resolves a slug, tracks the click and returns the target URL.
// Public flow, no authentication required.
//
// The counter update is the source of truth for click totals and happens
// before enrichment. Enrichment and the analytics row are best-effort: their
// failure never fails the visit.
type RedirectFlow interface {
	Visit(ctx context.Context, slug string, metadata *ClientMetadata) (*dto.VisitResponse, error)
}

// Enrichment holds the best-effort classification of a single visit.
// Fields that could not be determined hold the unknown sentinel.
type Enrichment struct {
	Continent   string
	CountryCode string
	DeviceType  string
	OSName      string
	BrowserName string
}

// ToClickEvent materializes the enrichment as an analytics row
func (e Enrichment) ToClickEvent(linkID uint) *models.ClickEvent {
	return &models.ClickEvent{
		LinkID:      linkID,
		ClickedAt:   utils.UTCNow(),
		Continent:   e.Continent,
		CountryCode: e.CountryCode,
		DeviceType:  e.DeviceType,
		OSName:      e.OSName,
		BrowserName: e.BrowserName,
	}
}

// RedirectFlowImpl implements the redirect business flow
type RedirectFlowImpl struct {
	linkRepo         repository.LinkRepository
	clickRepo        repository.ClickEventRepository
	geoService       services.GeoService
	detectionService services.DetectionService
}

// NewRedirectFlow creates a new redirect flow instance
func NewRedirectFlow(
	linkRepo repository.LinkRepository,
	clickRepo repository.ClickEventRepository,
	geoService services.GeoService,
	detectionService services.DetectionService,
) RedirectFlow {
	return &RedirectFlowImpl{
		linkRepo:         linkRepo,
		clickRepo:        clickRepo,
		geoService:       geoService,
		detectionService: detectionService,
	}
}

// Visit resolves the slug and records the click
func (f *RedirectFlowImpl) Visit(ctx context.Context, slug string, metadata *ClientMetadata) (*dto.VisitResponse, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		redirectsTotal.WithLabelValues("invalid").Inc()
		return nil, NewBusinessError("SLUG_VALIDATION_FAILED", "Slug validation failed", ErrSlugRequired)
	}

	link, err := f.linkRepo.BySlug(ctx, slug)
	if err != nil {
		redirectsTotal.WithLabelValues("error").Inc()
		return nil, NewBusinessError("LINK_LOOKUP_FAILED", "Failed to lookup link", err)
	}
	if link == nil {
		redirectsTotal.WithLabelValues("not_found").Inc()
		return nil, ErrLinkNotFound
	}

	if err := f.linkRepo.RegisterClick(ctx, link.ID, utils.UTCNow()); err != nil {
		redirectsTotal.WithLabelValues("error").Inc()
		return nil, NewBusinessError("CLICK_TRACK_FAILED", "Failed to track click", err)
	}

	enrichment := f.GatherEnrichment(ctx, metadata)
	if err := f.clickRepo.Save(ctx, enrichment.ToClickEvent(link.ID)); err != nil {
		clickEventsDroppedTotal.Inc()
	}

	redirectsTotal.WithLabelValues("ok").Inc()
	return &dto.VisitResponse{URL: link.OriginalURL}, nil
}

// GatherEnrichment classifies the visit from the client metadata. Geo and
// user-agent failures degrade to the unknown sentinel instead of erroring.
func (f *RedirectFlowImpl) GatherEnrichment(ctx context.Context, metadata *ClientMetadata) Enrichment {
	enrichment := Enrichment{
		Continent:   models.UnknownValue,
		CountryCode: models.UnknownValue,
		DeviceType:  models.UnknownValue,
		OSName:      models.UnknownValue,
		BrowserName: models.UnknownValue,
	}

	if metadata == nil {
		return enrichment
	}

	if f.detectionService != nil {
		device := f.detectionService.Detect(metadata.UserAgent)
		enrichment.DeviceType = device.DeviceType
		enrichment.OSName = device.OSName
		enrichment.BrowserName = device.BrowserName
	}

	ip := metadata.ClientIP()
	if ip == "" || f.geoService == nil {
		return enrichment
	}

	location, err := f.geoService.Lookup(ctx, ip)
	if err != nil || location == nil {
		return enrichment
	}
	if location.Continent != "" {
		enrichment.Continent = location.Continent
	}
	if location.CountryCode != "" {
		enrichment.CountryCode = location.CountryCode
	}

	return enrichment
}
