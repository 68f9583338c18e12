package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("BOOKING_WINDOW_DAYS", "")
	t.Setenv("APP_TIMEZONE", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 60, cfg.BookingWindowDays)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
	assert.False(t, cfg.S3.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("BOOKING_WINDOW_DAYS", "0")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("S3_BUCKET", "photos")
	t.Setenv("S3_ACCESS_KEY", "key")
	t.Setenv("S3_SECRET_KEY", "secret")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, 0, cfg.BookingWindowDays)
	assert.True(t, cfg.LogPretty)
	assert.True(t, cfg.S3.Enabled())
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("BOOKING_WINDOW_DAYS", "-3")
	t.Setenv("METRICS_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 60, cfg.BookingWindowDays)
	assert.True(t, cfg.MetricsEnabled)
}

func TestCORSOriginsList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://barberpro.app, http://localhost:5173,")

	cfg := Load()

	assert.Equal(t, []string{"https://barberpro.app", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
}
