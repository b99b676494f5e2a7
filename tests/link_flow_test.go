// Package tests contains integration tests for link management
package tests

import (
	"context"
	"testing"

	"github.com/linklift/linklift/app/dto"
	businessflow "github.com/linklift/linklift/business_flow"
	"github.com/linklift/linklift/repository"
	testingutil "github.com/linklift/linklift/testing"
	"github.com/linklift/linklift/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkFlow(t *testing.T) {
	testingutil.SkipIfNoDB(t)

	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		linkRepo := repository.NewLinkRepository(testDB.DB)
		clickRepo := repository.NewClickEventRepository(testDB.DB)

		linkFlow := businessflow.NewLinkFlow(linkRepo, clickRepo, testDB.DB)

		t.Run("CreateWithGeneratedSlug", func(t *testing.T) {
			req := &dto.CreateLinkRequest{
				OriginalURL: "https://example.com/some/long/path",
			}

			result, err := linkFlow.CreateLink(context.Background(), req, nil, testMetadata())
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.Len(t, result.Link.Slug, utils.SlugLength)
			assert.Equal(t, "https://example.com/some/long/path", result.Link.OriginalURL)
			assert.Zero(t, result.Link.TotalClicks)
			assert.Nil(t, result.Link.LastClickedAt)
		})

		t.Run("CreateAnonymousLink", func(t *testing.T) {
			req := &dto.CreateLinkRequest{
				OriginalURL: "https://example.com/anonymous",
			}

			result, err := linkFlow.CreateLink(context.Background(), req, nil, testMetadata())
			require.NoError(t, err)

			stored, err := linkRepo.ByID(context.Background(), result.Link.ID)
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Nil(t, stored.OwnerID)
		})

		t.Run("CreateOwnedLink", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			req := &dto.CreateLinkRequest{
				OriginalURL: "https://example.com/owned",
			}

			result, err := linkFlow.CreateLink(context.Background(), req, &user.ID, testMetadata())
			require.NoError(t, err)

			stored, err := linkRepo.ByID(context.Background(), result.Link.ID)
			require.NoError(t, err)
			require.NotNil(t, stored)
			require.NotNil(t, stored.OwnerID)
			assert.Equal(t, user.ID, *stored.OwnerID)
		})

		t.Run("CreateWithCustomSlug", func(t *testing.T) {
			req := &dto.CreateLinkRequest{
				OriginalURL: "https://example.com/launch",
				CustomSlug:  utils.ToPtr("my-launch"),
			}

			result, err := linkFlow.CreateLink(context.Background(), req, nil, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "my-launch", result.Link.Slug)
		})

		t.Run("CustomSlugCollision", func(t *testing.T) {
			first := &dto.CreateLinkRequest{
				OriginalURL: "https://example.com/first",
				CustomSlug:  utils.ToPtr("taken-slug"),
			}
			_, err := linkFlow.CreateLink(context.Background(), first, nil, testMetadata())
			require.NoError(t, err)

			second := &dto.CreateLinkRequest{
				OriginalURL: "https://example.com/second",
				CustomSlug:  utils.ToPtr("taken-slug"),
			}
			result, err := linkFlow.CreateLink(context.Background(), second, nil, testMetadata())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsSlugAlreadyExists(err))
		})

		t.Run("EditSlug", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			link, err := fixtures.CreateTestLink(&user.ID)
			require.NoError(t, err)

			req := &dto.EditSlugRequest{NewSlug: "renamed-slug"}
			result, err := linkFlow.EditSlug(context.Background(), link.ID, user.ID, req, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "renamed-slug", result.Slug)

			stored, err := linkRepo.BySlug(context.Background(), "renamed-slug")
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, link.ID, stored.ID)

			old, err := linkRepo.BySlug(context.Background(), link.Slug)
			require.NoError(t, err)
			assert.Nil(t, old)
		})

		t.Run("EditSlugCollision", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			link, err := fixtures.CreateTestLink(&user.ID)
			require.NoError(t, err)
			other, err := fixtures.CreateTestLink(&user.ID)
			require.NoError(t, err)

			req := &dto.EditSlugRequest{NewSlug: other.Slug}
			result, err := linkFlow.EditSlug(context.Background(), link.ID, user.ID, req, testMetadata())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsSlugAlreadyExists(err))
		})

		t.Run("EditSlugNotOwner", func(t *testing.T) {
			owner, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			stranger, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			link, err := fixtures.CreateTestLink(&owner.ID)
			require.NoError(t, err)

			req := &dto.EditSlugRequest{NewSlug: "hijacked"}
			result, err := linkFlow.EditSlug(context.Background(), link.ID, stranger.ID, req, testMetadata())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsLinkNotOwned(err))
		})

		t.Run("EditSlugAnonymousLink", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			link, err := fixtures.CreateTestLink(nil)
			require.NoError(t, err)

			req := &dto.EditSlugRequest{NewSlug: "cannot-claim"}
			result, err := linkFlow.EditSlug(context.Background(), link.ID, user.ID, req, testMetadata())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsLinkNotOwned(err))
		})

		t.Run("EditSlugLinkNotFound", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			req := &dto.EditSlugRequest{NewSlug: "nothing-here"}
			result, err := linkFlow.EditSlug(context.Background(), 999999, user.ID, req, testMetadata())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsLinkNotFound(err))
		})

		t.Run("DeleteLinkRemovesClicks", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			link, err := fixtures.CreateTestLink(&user.ID)
			require.NoError(t, err)

			_, err = fixtures.CreateTestClickEvent(link.ID, "DE", "Desktop")
			require.NoError(t, err)
			_, err = fixtures.CreateTestClickEvent(link.ID, "FR", "Mobile")
			require.NoError(t, err)

			err = linkFlow.DeleteLink(context.Background(), link.ID, user.ID, testMetadata())
			require.NoError(t, err)

			stored, err := linkRepo.ByID(context.Background(), link.ID)
			require.NoError(t, err)
			assert.Nil(t, stored)

			count, err := clickRepo.CountByLink(context.Background(), link.ID)
			require.NoError(t, err)
			assert.Zero(t, count)
		})

		t.Run("DeleteLinkNotOwner", func(t *testing.T) {
			owner, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			stranger, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			link, err := fixtures.CreateTestLink(&owner.ID)
			require.NoError(t, err)

			err = linkFlow.DeleteLink(context.Background(), link.ID, stranger.ID, testMetadata())
			require.Error(t, err)
			assert.True(t, businessflow.IsLinkNotOwned(err))

			stored, err := linkRepo.ByID(context.Background(), link.ID)
			require.NoError(t, err)
			assert.NotNil(t, stored)
		})

		t.Run("ListLinks", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			first, err := fixtures.CreateTestLink(&user.ID)
			require.NoError(t, err)
			second, err := fixtures.CreateTestLink(&user.ID)
			require.NoError(t, err)

			// Another user's link must not leak into the listing
			other, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			_, err = fixtures.CreateTestLink(&other.ID)
			require.NoError(t, err)

			result, err := linkFlow.ListLinks(context.Background(), user.ID)
			require.NoError(t, err)
			assert.Equal(t, 2, result.Total)
			require.Len(t, result.Links, 2)

			ids := []uint{result.Links[0].ID, result.Links[1].ID}
			assert.Contains(t, ids, first.ID)
			assert.Contains(t, ids, second.ID)
		})

		t.Run("ListLinksEmpty", func(t *testing.T) {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			result, err := linkFlow.ListLinks(context.Background(), user.ID)
			require.NoError(t, err)
			assert.Zero(t, result.Total)
			assert.Empty(t, result.Links)
		})

		return nil
	})
	require.NoError(t, err)
}
