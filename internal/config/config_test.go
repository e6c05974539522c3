package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "pricing")
	t.Setenv("DB_NAME", "pricing")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, 24*time.Hour, cfg.Pricing.QuoteValidity)
	assert.Equal(t, 15*time.Minute, cfg.Pricing.QuoteCacheTTL)
	assert.Equal(t, time.Minute, cfg.Worker.CatalogRefreshInterval)
	assert.Equal(t, 10*time.Minute, cfg.Worker.QuoteSweepInterval)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("QUOTE_VALIDITY", "48h")
	t.Setenv("CATALOG_REFRESH_INTERVAL", "30s")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 48*time.Hour, cfg.Pricing.QuoteValidity)
	assert.Equal(t, 30*time.Second, cfg.Worker.CatalogRefreshInterval)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoadRejectsIncompleteDatabaseConfig(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsMissingJWTSecret(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "pricing")
	t.Setenv("DB_NAME", "pricing")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("QUOTE_VALIDITY", "yesterday")

	_, err := Load()
	assert.Error(t, err)
}
