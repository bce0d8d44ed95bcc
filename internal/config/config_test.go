package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "test")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "posts", cfg.PostsType)
	assert.Equal(t, "pt-BR", cfg.Locale)
	assert.Equal(t, "dd LLL yyyy", cfg.DatePattern)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 1, cfg.PageSize)
	assert.False(t, cfg.R2Enabled())
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("POSTS_PAGE_SIZE", "10")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("LOCALE", "en-US")
	t.Setenv("R2_ENDPOINT", "https://account.r2.cloudflarestorage.com")
	t.Setenv("R2_ACCESS_KEY", "key")
	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "en-US", cfg.Locale)
	assert.True(t, cfg.R2Enabled())
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unsupported locale", key: "LOCALE", value: "fr-FR"},
		{name: "page size too large", key: "POSTS_PAGE_SIZE", value: "500"},
		{name: "api url not a url", key: "PRISMIC_API_URL", value: "not a url"},
		{name: "unknown time zone", key: "TIMEZONE", value: "Mars/Olympus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", "test")
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestR2EndpointFromAccountID(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "abc123")
	t.Setenv("R2_ACCESS_KEY", "key")
	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://abc123.r2.cloudflarestorage.com", cfg.R2BaseEndpoint())
	assert.True(t, cfg.R2Enabled())
}
