package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Load caches globally, so a single test exercises defaults and overrides
// together: values with env overrides must win, the rest fall to defaults.
func TestLoadDefaultsAndEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_PORT", "9191")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	require.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "9191", cfg.AppPort)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)

	// defaults
	assert.Equal(t, 72, cfg.TokenTTLHours)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Empty(t, cfg.RedisHost)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "release", cfg.GinMode)

	// cached on subsequent calls
	assert.Equal(t, cfg, Get())
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a ,b,, "))
	assert.Nil(t, splitAndTrim(" , "))
}
