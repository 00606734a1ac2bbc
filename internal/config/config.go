package config

import (
	"fmt"
	"os"
	"time"
)

// Config contains all runtime settings for the shop backend.
type Config struct {
	Port string

	// Messenger platform
	VerifyToken     string
	PageAccessToken string
	AppSecret       string
	GraphAPIBaseURL string

	// Downstream order notifications
	AdminWebhookURL string

	// Database
	DBUser                 string
	DBPass                 string
	DBName                 string
	InstanceConnectionName string
	UseMemoryStore         bool

	CatalogTTL         time.Duration
	SessionIdleTimeout time.Duration
}

// Load reads environment variables and applies safe defaults. Missing
// platform credentials are tolerated here; main logs what is unconfigured.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                   envOrDefault("PORT", "8080"),
		VerifyToken:            os.Getenv("MESSENGER_VERIFY_TOKEN"),
		PageAccessToken:        os.Getenv("PAGE_ACCESS_TOKEN"),
		AppSecret:              os.Getenv("MESSENGER_APP_SECRET"),
		GraphAPIBaseURL:        envOrDefault("GRAPH_API_BASE_URL", "https://graph.facebook.com/v17.0"),
		AdminWebhookURL:        os.Getenv("ADMIN_WEBHOOK_URL"),
		DBUser:                 envOrDefault("DB_USER", "postgres"),
		DBPass:                 os.Getenv("DB_PASS"),
		DBName:                 envOrDefault("DB_NAME", "caseshop"),
		InstanceConnectionName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		UseMemoryStore:         os.Getenv("USE_MEMORY_STORE") == "true",
		CatalogTTL:             5 * time.Minute,
		SessionIdleTimeout:     30 * time.Minute,
	}

	var err error
	cfg.CatalogTTL, err = durationFromEnv("CATALOG_CACHE_TTL", cfg.CatalogTTL)
	if err != nil {
		return nil, err
	}
	cfg.SessionIdleTimeout, err = durationFromEnv("SESSION_IDLE_TIMEOUT", cfg.SessionIdleTimeout)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}
