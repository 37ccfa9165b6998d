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

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL     string
	Port            string
	SessionSecret   string
	SessionTTL      time.Duration
	AdminEmail      string
	AdminPassword   string
	RateLimitLeads  RateLimitConfig
	RateLimitImages RateLimitConfig
	GoogleAPIKey    string
	GoogleCSEID     string
	ImageCacheTTL   time.Duration
	PhoneRegion     string
	WebRoot         string
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Port:          getEnv("PORT", "8080"),
		SessionSecret: getEnv("SESSION_SECRET", "dev-secret"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		GoogleAPIKey:  os.Getenv("GOOGLE_API_KEY"),
		GoogleCSEID:   os.Getenv("GOOGLE_CSE_ID"),
		PhoneRegion:   strings.ToUpper(getEnv("PHONE_REGION", "US")),
		WebRoot:       getEnv("WEB_ROOT", "web"),
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL value: %w", err)
	}
	cfg.SessionTTL = sessionTTL

	imageCacheTTL, err := time.ParseDuration(getEnv("IMAGE_CACHE_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid IMAGE_CACHE_TTL value: %w", err)
	}
	cfg.ImageCacheTTL = imageCacheTTL

	leads, err := parseRateLimit(getEnv("RATE_LIMIT_LEADS", "20/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_LEADS value: %w", err)
	}
	cfg.RateLimitLeads = leads

	images, err := parseRateLimit(getEnv("RATE_LIMIT_IMAGES", "30/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_IMAGES value: %w", err)
	}
	cfg.RateLimitImages = images

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
