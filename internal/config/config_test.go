package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BLS_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.BLSAPIKey)
	assert.False(t, cfg.Registered)
	assert.Equal(t, "https://api.bls.gov/publicAPI", cfg.BLSBaseURL)
	assert.Equal(t, 30*time.Second, cfg.BLSTimeout)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.RequestInterval)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("BLS_API_KEY", testAPIKey)
	t.Setenv("BLS_API_BASE_URL", "http://localhost:9999/publicAPI/")
	t.Setenv("BLS_TIMEOUT", "5s")
	t.Setenv("BLS_CACHE_TTL", "1h")
	t.Setenv("BLS_REQUEST_INTERVAL", "250ms")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testAPIKey, cfg.BLSAPIKey)
	assert.True(t, cfg.Registered)
	assert.Equal(t, "http://localhost:9999/publicAPI", cfg.BLSBaseURL)
	assert.Equal(t, 5*time.Second, cfg.BLSTimeout)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestInterval)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_PlaceholderKeyTreatedAsUnset(t *testing.T) {
	t.Setenv("BLS_API_KEY", "<YOUR-BLS-API-KEY-HERE>")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.BLSAPIKey)
	assert.False(t, cfg.Registered)
}

func TestLoad_KeyWhitespaceTrimmed(t *testing.T) {
	t.Setenv("BLS_API_KEY", "  "+testAPIKey+"  ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testAPIKey, cfg.BLSAPIKey)
	assert.True(t, cfg.Registered)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("BLS_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BLS_TIMEOUT")
}

func TestLoad_NegativeTimeout(t *testing.T) {
	t.Setenv("BLS_TIMEOUT", "-5s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BLS_TIMEOUT")
}

func TestLoad_InvalidCacheTTL(t *testing.T) {
	t.Setenv("BLS_CACHE_TTL", "yesterday")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BLS_CACHE_TTL")
}

func TestLoad_ZeroCacheTTL(t *testing.T) {
	t.Setenv("BLS_CACHE_TTL", "0s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BLS_CACHE_TTL")
}

func TestLoad_RequestIntervalMayDisablePacing(t *testing.T) {
	t.Setenv("BLS_REQUEST_INTERVAL", "0s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), cfg.RequestInterval)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}
