// Package tests contains integration tests for domain models
package tests

import (
	"testing"

	"github.com/linklift/linklift/models"
	testingutil "github.com/linklift/linklift/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkIsOwnedBy(t *testing.T) {
	ownerID := uint(7)

	owned := &models.Link{OwnerID: &ownerID}
	assert.True(t, owned.IsOwnedBy(7))
	assert.False(t, owned.IsOwnedBy(8))

	anonymous := &models.Link{}
	assert.False(t, anonymous.IsOwnedBy(7))
	assert.False(t, anonymous.IsOwnedBy(0))
}

func TestClickEventDefaults(t *testing.T) {
	testingutil.SkipIfNoDB(t)

	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		link, err := fixtures.CreateTestLink(nil)
		require.NoError(t, err)

		// A bare insert picks up the Unknown defaults from the schema
		event := &models.ClickEvent{LinkID: link.ID}
		require.NoError(t, testDB.DB.Create(event).Error)

		var stored models.ClickEvent
		require.NoError(t, testDB.DB.Last(&stored, event.ID).Error)
		assert.Equal(t, models.UnknownValue, stored.Continent)
		assert.Equal(t, models.UnknownValue, stored.CountryCode)
		assert.Equal(t, models.UnknownValue, stored.DeviceType)
		assert.Equal(t, models.UnknownValue, stored.OSName)
		assert.Equal(t, models.UnknownValue, stored.BrowserName)
		assert.False(t, stored.ClickedAt.IsZero())

		return nil
	})
	require.NoError(t, err)
}

func TestUserDeletionCascadesInSchema(t *testing.T) {
	testingutil.SkipIfNoDB(t)

	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)
		link, err := fixtures.CreateTestLink(&user.ID)
		require.NoError(t, err)
		_, err = fixtures.CreateTestClickEvent(link.ID, "DE", "Desktop")
		require.NoError(t, err)

		// Raw delete exercises the ON DELETE CASCADE chain
		require.NoError(t, testDB.DB.Exec("DELETE FROM users WHERE id = ?", user.ID).Error)

		var linkCount int64
		require.NoError(t, testDB.DB.Table("links").Where("id = ?", link.ID).Count(&linkCount).Error)
		assert.Zero(t, linkCount)

		var eventCount int64
		require.NoError(t, testDB.DB.Table("click_events").Where("link_id = ?", link.ID).Count(&eventCount).Error)
		assert.Zero(t, eventCount)

		return nil
	})
	require.NoError(t, err)
}
