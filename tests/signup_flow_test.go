// Package tests contains integration tests for signup flow
package tests

import (
	"context"
	"testing"
	"time"

	"github.com/linklift/linklift/app/dto"
	"github.com/linklift/linklift/app/services"
	businessflow "github.com/linklift/linklift/business_flow"
	"github.com/linklift/linklift/repository"
	testingutil "github.com/linklift/linklift/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestTokenService(t *testing.T) services.TokenService {
	t.Helper()

	tokenService, err := services.NewTokenService(
		1*time.Hour,
		"test-issuer",
		"test-audience",
		false,
		"",
		"",
		"test-secret-key-for-jwt-signing-32-chars",
	)
	require.NoError(t, err)
	return tokenService
}

func testMetadata() *businessflow.ClientMetadata {
	return businessflow.NewClientMetadata("127.0.0.1", "Test User Agent")
}

func TestSignupFlow(t *testing.T) {
	testingutil.SkipIfNoDB(t)

	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		fixtures := testingutil.NewTestFixtures(testDB)

		userRepo := repository.NewUserRepository(testDB.DB)
		tokenService := newTestTokenService(t)

		signupFlow := businessflow.NewSignupFlow(userRepo, tokenService, testDB.DB, bcrypt.MinCost)

		t.Run("SuccessfulRegistration", func(t *testing.T) {
			req := &dto.CreateAccountRequest{
				Username: "linkmaster",
				Email:    "new.user@example.com",
				Password: "SecurePass123!",
			}

			result, err := signupFlow.Register(context.Background(), req, testMetadata())
			require.NoError(t, err)
			require.NotNil(t, result)

			assert.NotZero(t, result.User.ID)
			assert.NotEmpty(t, result.User.UUID)
			assert.Equal(t, "linkmaster", result.User.Username)
			assert.Equal(t, "new.user@example.com", result.User.Email)

			assert.NotEmpty(t, result.Session.AccessToken)
			assert.Equal(t, "Bearer", result.Session.TokenType)
			assert.Equal(t, int64(3600), result.Session.ExpiresIn)

			// The stored hash must verify but never leak the plaintext
			stored, err := userRepo.ByEmail(context.Background(), "new.user@example.com")
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.NotEqual(t, "SecurePass123!", stored.PasswordHash)
			assert.NotEmpty(t, stored.PasswordHash)

			// The configured work factor, not the library default, is applied
			cost, err := bcrypt.Cost([]byte(stored.PasswordHash))
			require.NoError(t, err)
			assert.Equal(t, bcrypt.MinCost, cost)
		})

		t.Run("EmailIsNormalized", func(t *testing.T) {
			req := &dto.CreateAccountRequest{
				Username: "shouty",
				Email:    "  Mixed.Case@Example.COM ",
				Password: "SecurePass123!",
			}

			result, err := signupFlow.Register(context.Background(), req, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, "mixed.case@example.com", result.User.Email)
		})

		t.Run("WhitespaceUsername", func(t *testing.T) {
			req := &dto.CreateAccountRequest{
				Username: "   ",
				Email:    "whitespace.user@example.com",
				Password: "SecurePass123!",
			}

			result, err := signupFlow.Register(context.Background(), req, testMetadata())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsUsernameRequired(err))
			assert.False(t, businessflow.IsUserNotFound(err))
		})

		t.Run("WhitespaceEmail", func(t *testing.T) {
			req := &dto.CreateAccountRequest{
				Username: "noemail",
				Email:    "   ",
				Password: "SecurePass123!",
			}

			result, err := signupFlow.Register(context.Background(), req, testMetadata())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsEmailRequired(err))
			assert.False(t, businessflow.IsEmailAlreadyExists(err))
		})

		t.Run("MissingPassword", func(t *testing.T) {
			req := &dto.CreateAccountRequest{
				Username: "nopassword",
				Email:    "no.password@example.com",
			}

			result, err := signupFlow.Register(context.Background(), req, testMetadata())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsPasswordRequired(err))
		})

		t.Run("DuplicateEmail", func(t *testing.T) {
			existing, err := fixtures.CreateTestUser()
			require.NoError(t, err)

			req := &dto.CreateAccountRequest{
				Username: "impostor",
				Email:    existing.Email,
				Password: "SecurePass123!",
			}

			result, err := signupFlow.Register(context.Background(), req, testMetadata())
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsEmailAlreadyExists(err))
		})

		t.Run("IssuedTokenIsValid", func(t *testing.T) {
			req := &dto.CreateAccountRequest{
				Username: "tokencheck",
				Email:    "token.check@example.com",
				Password: "SecurePass123!",
			}

			result, err := signupFlow.Register(context.Background(), req, testMetadata())
			require.NoError(t, err)

			claims, err := tokenService.ValidateToken(result.Session.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, result.User.ID, claims.UserID)
			assert.Equal(t, "tokencheck", claims.Username)
			assert.Equal(t, "token.check@example.com", claims.Email)
		})

		return nil
	})
	require.NoError(t, err)
}
