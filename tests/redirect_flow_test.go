// Package tests contains integration tests for slug resolution and click tracking
package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/linklift/linklift/app/services"
	businessflow "github.com/linklift/linklift/business_flow"
	"github.com/linklift/linklift/models"
	"github.com/linklift/linklift/repository"
	testingutil "github.com/linklift/linklift/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const desktopUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func TestRedirectFlow(t *testing.T) {
	testingutil.SkipIfNoDB(t)

	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		linkRepo := repository.NewLinkRepository(testDB.DB)
		clickRepo := repository.NewClickEventRepository(testDB.DB)
		detectionService := services.NewDetectionService()

		t.Run("SuccessfulVisit", func(t *testing.T) {
			geoService := services.NewMockGeoService()
			geoService.Locations["198.51.100.4"] = &services.GeoLocation{Continent: "Europe", CountryCode: "DE"}

			redirectFlow := businessflow.NewRedirectFlow(linkRepo, clickRepo, geoService, detectionService)

			link, err := fixtures.CreateTestLink(nil)
			require.NoError(t, err)

			metadata := businessflow.NewClientMetadata("10.0.0.1", desktopUA)
			metadata.SetForwardedIP("198.51.100.4")

			result, err := redirectFlow.Visit(context.Background(), link.Slug, metadata)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, link.OriginalURL, result.URL)

			// Counter and timestamp are updated on the link row
			stored, err := linkRepo.ByID(context.Background(), link.ID)
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, int64(1), stored.TotalClicks)
			assert.NotNil(t, stored.LastClickedAt)

			// One fully enriched click event was recorded
			events, err := clickRepo.ListByLink(context.Background(), link.ID)
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, "Europe", events[0].Continent)
			assert.Equal(t, "DE", events[0].CountryCode)
			assert.Equal(t, "Desktop", events[0].DeviceType)
			assert.Equal(t, "Windows", events[0].OSName)
			assert.Equal(t, "Chrome", events[0].BrowserName)

			// The forwarded address, not the peer, was geo-looked-up
			assert.Equal(t, []string{"198.51.100.4"}, geoService.Lookups)
		})

		t.Run("RepeatVisitsAccumulate", func(t *testing.T) {
			geoService := services.NewMockGeoService()
			redirectFlow := businessflow.NewRedirectFlow(linkRepo, clickRepo, geoService, detectionService)

			link, err := fixtures.CreateTestLink(nil)
			require.NoError(t, err)

			for i := 0; i < 3; i++ {
				_, err := redirectFlow.Visit(context.Background(), link.Slug, testMetadata())
				require.NoError(t, err)
			}

			stored, err := linkRepo.ByID(context.Background(), link.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(3), stored.TotalClicks)

			count, err := clickRepo.CountByLink(context.Background(), link.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(3), count)
		})

		t.Run("GeoFailureDegradesToUnknown", func(t *testing.T) {
			geoService := services.NewMockGeoService()
			geoService.Err = errors.New("provider down")

			redirectFlow := businessflow.NewRedirectFlow(linkRepo, clickRepo, geoService, detectionService)

			link, err := fixtures.CreateTestLink(nil)
			require.NoError(t, err)

			metadata := businessflow.NewClientMetadata("203.0.113.7", desktopUA)

			result, err := redirectFlow.Visit(context.Background(), link.Slug, metadata)
			require.NoError(t, err)
			assert.Equal(t, link.OriginalURL, result.URL)

			// The visit still counts and the row still records device data
			stored, err := linkRepo.ByID(context.Background(), link.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), stored.TotalClicks)

			events, err := clickRepo.ListByLink(context.Background(), link.ID)
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, models.UnknownValue, events[0].Continent)
			assert.Equal(t, models.UnknownValue, events[0].CountryCode)
			assert.Equal(t, "Desktop", events[0].DeviceType)
		})

		t.Run("NilMetadata", func(t *testing.T) {
			geoService := services.NewMockGeoService()
			redirectFlow := businessflow.NewRedirectFlow(linkRepo, clickRepo, geoService, detectionService)

			link, err := fixtures.CreateTestLink(nil)
			require.NoError(t, err)

			result, err := redirectFlow.Visit(context.Background(), link.Slug, nil)
			require.NoError(t, err)
			assert.Equal(t, link.OriginalURL, result.URL)

			events, err := clickRepo.ListByLink(context.Background(), link.ID)
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, models.UnknownValue, events[0].DeviceType)
			assert.Equal(t, models.UnknownValue, events[0].CountryCode)
			assert.Empty(t, geoService.Lookups)
		})

		t.Run("SlugNotFound", func(t *testing.T) {
			geoService := services.NewMockGeoService()
			redirectFlow := businessflow.NewRedirectFlow(linkRepo, clickRepo, geoService, detectionService)

			result, err := redirectFlow.Visit(context.Background(), "no-such-slug", testMetadata())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsLinkNotFound(err))
		})

		t.Run("BlankSlug", func(t *testing.T) {
			geoService := services.NewMockGeoService()
			redirectFlow := businessflow.NewRedirectFlow(linkRepo, clickRepo, geoService, detectionService)

			result, err := redirectFlow.Visit(context.Background(), "   ", testMetadata())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsSlugRequired(err))
		})

		return nil
	})
	require.NoError(t, err)
}
