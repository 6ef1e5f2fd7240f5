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
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.NotEmpty(t, cfg.ShopAPIURL)
	assert.NotEmpty(t, cfg.CDNURL)
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_PORT", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidSessionTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "-5m")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "session TTL must be positive")
}

func TestLoad_InvalidRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rate limit")
}

func TestLoad_CustomShopAPIURL(t *testing.T) {
	t.Setenv("SHOP_API_URL", "http://localhost:9000/api")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/api", cfg.ShopAPIURL)
}

func TestLoad_CustomSessionTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "2h")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}
