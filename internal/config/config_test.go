package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "GO_ENV", "DATABASE_URL", "OPENWEATHERMAP_API_KEY", "OPENWEATHER_BASE_URL",
		"UPSTREAM_TIMEOUT", "JWT_SECRET", "JWT_TTL", "FRONTEND_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "https://api.openweathermap.org", cfg.OpenWeatherURL)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "http://localhost:3000", cfg.FrontendURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "5000")
	t.Setenv("GO_ENV", "production")
	t.Setenv("OPENWEATHERMAP_API_KEY", "key")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")
	t.Setenv("JWT_TTL", "1h")

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "key", cfg.OpenWeatherAPIKey)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("UPSTREAM_TIMEOUT", "soon")
	t.Setenv("JWT_TTL", "-5m")

	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
}
