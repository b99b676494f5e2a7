// Package tests contains integration tests for link analytics
package tests

import (
	"context"
	"testing"

	businessflow "github.com/linklift/linklift/business_flow"
	"github.com/linklift/linklift/models"
	"github.com/linklift/linklift/repository"
	testingutil "github.com/linklift/linklift/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticFlow(t *testing.T) {
	testingutil.SkipIfNoDB(t)

	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		linkRepo := repository.NewLinkRepository(testDB.DB)
		clickRepo := repository.NewClickEventRepository(testDB.DB)

		analyticFlow := businessflow.NewAnalyticFlow(linkRepo, clickRepo)

		t.Run("AggregatesByDimension", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			link, err := fixtures.CreateTestLink(&user.ID)
			require.NoError(t, err)

			_, err = fixtures.CreateTestClickEvent(link.ID, "DE", "Desktop")
			require.NoError(t, err)
			_, err = fixtures.CreateTestClickEvent(link.ID, "DE", "Mobile")
			require.NoError(t, err)
			_, err = fixtures.CreateTestClickEvent(link.ID, "FR", "Desktop")
			require.NoError(t, err)

			result, err := analyticFlow.GetLinkAnalytics(context.Background(), link.ID, user.ID)
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.Equal(t, link.ID, result.Link.ID)
			assert.Len(t, result.Analytics, 3)
			assert.Equal(t, int64(3), result.Summary.RecordedClicks)

			assert.Equal(t, int64(2), result.Summary.ByCountry["DE"])
			assert.Equal(t, int64(1), result.Summary.ByCountry["FR"])
			assert.Equal(t, int64(2), result.Summary.ByDevice["Desktop"])
			assert.Equal(t, int64(1), result.Summary.ByDevice["Mobile"])
			assert.Equal(t, int64(3), result.Summary.ByContinent[models.UnknownValue])
		})

		t.Run("CounterCanExceedRecordedRows", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			link, err := fixtures.CreateTestLink(&user.ID)
			require.NoError(t, err)

			// Five counted clicks, only two enriched rows survived
			for i := 0; i < 5; i++ {
				require.NoError(t, linkRepo.RegisterClick(context.Background(), link.ID, link.CreatedAt))
			}
			_, err = fixtures.CreateTestClickEvent(link.ID, "DE", "Desktop")
			require.NoError(t, err)
			_, err = fixtures.CreateTestClickEvent(link.ID, "FR", "Mobile")
			require.NoError(t, err)

			result, err := analyticFlow.GetLinkAnalytics(context.Background(), link.ID, user.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(5), result.Summary.TotalClicks)
			assert.Equal(t, int64(2), result.Summary.RecordedClicks)
		})

		t.Run("EmptyAnalytics", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			link, err := fixtures.CreateTestLink(&user.ID)
			require.NoError(t, err)

			result, err := analyticFlow.GetLinkAnalytics(context.Background(), link.ID, user.ID)
			require.NoError(t, err)
			assert.Empty(t, result.Analytics)
			assert.Zero(t, result.Summary.RecordedClicks)
			assert.Empty(t, result.Summary.ByCountry)
		})

		t.Run("NotOwner", func(t *testing.T) {
			owner, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			stranger, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			link, err := fixtures.CreateTestLink(&owner.ID)
			require.NoError(t, err)

			result, err := analyticFlow.GetLinkAnalytics(context.Background(), link.ID, stranger.ID)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsLinkNotOwned(err))
		})

		t.Run("LinkNotFound", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			result, err := analyticFlow.GetLinkAnalytics(context.Background(), 999999, user.ID)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsLinkNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}
