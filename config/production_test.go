package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "test-secret-key-for-jwt-signing-32-chars")
}

func TestLoadProductionConfigDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "")
	t.Setenv("BCRYPT_COST", "")

	cfg, err := LoadProductionConfig()
	require.NoError(t, err)

	// Issued tokens effectively never expire; clients hold them until logout
	assert.Equal(t, 100*365*24*time.Hour, cfg.JWT.AccessTokenTTL)

	assert.Equal(t, 12, cfg.Security.BcryptCost)
	assert.Equal(t, 20, cfg.Security.AuthRateLimit)
	assert.Equal(t, 2000, cfg.Security.GlobalRateLimit)
	assert.Equal(t, 1*time.Minute, cfg.Security.RateLimitWindow)
	assert.NotEmpty(t, cfg.Security.AllowedOrigins)
	assert.Contains(t, cfg.Security.AllowedMethods, "PATCH")
	assert.Contains(t, cfg.Security.AllowedHeaders, "Authorization")

	assert.Equal(t, []string{"127.0.0.1"}, cfg.Server.TrustedProxies)
	assert.Equal(t, "X-Forwarded-For", cfg.Server.ProxyHeader)
}

func TestLoadProductionConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "15m")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("CORS_ALLOWED_METHODS", "GET, POST")

	cfg, err := LoadProductionConfig()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.Equal(t, []string{"GET", "POST"}, cfg.Security.AllowedMethods)
}

func TestValidateProductionConfig(t *testing.T) {
	t.Run("BcryptCostOutOfRange", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("BCRYPT_COST", "4")

		_, err := LoadProductionConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "BCRYPT_COST")
	})

	t.Run("MissingJWTSecret", func(t *testing.T) {
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("JWT_SECRET_KEY", "")

		_, err := LoadProductionConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
	})
}
