package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// BLS API access. An empty key selects the public v1 API tier.
	BLSAPIKey       string
	BLSBaseURL      string
	BLSTimeout      time.Duration
	CacheTTL        time.Duration
	RequestInterval time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Registered is true when a usable BLS registration key is present.
	Registered bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	timeout, err := parsePositiveDuration("BLS_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	ttl, err := parsePositiveDuration("BLS_CACHE_TTL", "24h")
	if err != nil {
		return nil, err
	}

	// Zero or negative disables request pacing.
	interval, err := parseDuration("BLS_REQUEST_INTERVAL", "500ms")
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	apiKey := normalizeAPIKey(os.Getenv("BLS_API_KEY"))

	cfg := &Config{
		BLSAPIKey:       apiKey,
		BLSBaseURL:      strings.TrimRight(envOrDefault("BLS_API_BASE_URL", "https://api.bls.gov/publicAPI"), "/"),
		BLSTimeout:      timeout,
		CacheTTL:        ttl,
		RequestInterval: interval,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		Registered:      apiKey != "",
	}

	if cfg.BLSBaseURL == "" {
		return nil, errors.New("BLS_API_BASE_URL is required")
	}
	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}

	return cfg, nil
}

// normalizeAPIKey discards unfilled "<YOUR-KEY-HERE>"-style placeholders so a
// templated .env does not masquerade as a registered key.
func normalizeAPIKey(raw string) string {
	key := strings.TrimSpace(raw)
	if strings.HasPrefix(key, "<") {
		return ""
	}
	return key
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := parseDuration(key, fallback)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
