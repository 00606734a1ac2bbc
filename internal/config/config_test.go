package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "MESSENGER_VERIFY_TOKEN", "PAGE_ACCESS_TOKEN", "MESSENGER_APP_SECRET",
		"GRAPH_API_BASE_URL", "ADMIN_WEBHOOK_URL", "DB_USER", "DB_PASS", "DB_NAME",
		"INSTANCE_CONNECTION_NAME", "USE_MEMORY_STORE", "CATALOG_CACHE_TTL", "SESSION_IDLE_TIMEOUT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "https://graph.facebook.com/v17.0", cfg.GraphAPIBaseURL)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "caseshop", cfg.DBName)
	assert.False(t, cfg.UseMemoryStore)
	assert.Equal(t, 5*time.Minute, cfg.CatalogTTL)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)

	// Credentials stay empty until configured; startup logs the gaps.
	assert.Empty(t, cfg.VerifyToken)
	assert.Empty(t, cfg.PageAccessToken)
	assert.Empty(t, cfg.AppSecret)
	assert.Empty(t, cfg.AdminWebhookURL)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("MESSENGER_VERIFY_TOKEN", "verify-me")
	t.Setenv("PAGE_ACCESS_TOKEN", "page-token")
	t.Setenv("MESSENGER_APP_SECRET", "app-secret")
	t.Setenv("GRAPH_API_BASE_URL", "http://localhost:9999/graph")
	t.Setenv("ADMIN_WEBHOOK_URL", "https://hooks.example.com/orders")
	t.Setenv("USE_MEMORY_STORE", "true")
	t.Setenv("CATALOG_CACHE_TTL", "90s")
	t.Setenv("SESSION_IDLE_TIMEOUT", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "verify-me", cfg.VerifyToken)
	assert.Equal(t, "page-token", cfg.PageAccessToken)
	assert.Equal(t, "app-secret", cfg.AppSecret)
	assert.Equal(t, "http://localhost:9999/graph", cfg.GraphAPIBaseURL)
	assert.Equal(t, "https://hooks.example.com/orders", cfg.AdminWebhookURL)
	assert.True(t, cfg.UseMemoryStore)
	assert.Equal(t, 90*time.Second, cfg.CatalogTTL)
	assert.Equal(t, time.Hour, cfg.SessionIdleTimeout)
}

func TestLoadRejectsBadDurations(t *testing.T) {
	cases := map[string]string{
		"CATALOG_CACHE_TTL":    "soon",
		"SESSION_IDLE_TIMEOUT": "-5m",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}
