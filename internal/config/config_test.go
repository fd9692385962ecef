package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 168*time.Hour, cfg.Security.TokenTTL)
	assert.Equal(t, 12, cfg.Security.BcryptCost)
	assert.Equal(t, 90, cfg.Audit.RetentionDays)

	// Development falls back to the well-known secret.
	assert.Equal(t, DevTokenSecret, cfg.Security.TokenSecret)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("STOREFRONT_ENVIRONMENT", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tokensecret")
}

func TestLoad_ProductionRejectsDevSecret(t *testing.T) {
	t.Setenv("STOREFRONT_ENVIRONMENT", "production")
	t.Setenv("STOREFRONT_SECURITY_TOKENSECRET", DevTokenSecret)

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ProductionRequiresSecureCookie(t *testing.T) {
	t.Setenv("STOREFRONT_ENVIRONMENT", "production")
	t.Setenv("STOREFRONT_SECURITY_TOKENSECRET", "a-real-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cookiesecure")

	t.Setenv("STOREFRONT_SECURITY_COOKIESECURE", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "a-real-secret", cfg.Security.TokenSecret)
	assert.True(t, cfg.Security.CookieSecure)
}
