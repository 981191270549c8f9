package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values. It is loaded once
// at startup and treated as immutable afterwards.
type Config struct {
	DatabaseURL        string
	APIKey             string
	Port               string
	DefaultPhoneRegion string
	RateLimitWrite     RateLimitConfig
}

// Load reads configuration from environment variables and applies sane defaults.
// APIKey has no default; an unconfigured secret fails closed at the auth layer.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		APIKey:             os.Getenv("API_KEY"),
		Port:               getEnv("PORT", "8080"),
		DefaultPhoneRegion: strings.ToUpper(getEnv("DEFAULT_PHONE_REGION", "MX")),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_WRITE", "60/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WRITE value: %w", err)
	}
	cfg.RateLimitWrite = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
