package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 5*time.Second, cfg.SensorTimeout)
	assert.Empty(t, cfg.SensorURL)
	assert.Equal(t, 5, cfg.GeocodeCount)
	assert.Equal(t, 256, cfg.GeocodeCacheSize)
	assert.Equal(t, "https://geocoding-api.open-meteo.com/v1/search", cfg.GeocodeBaseURL)
	assert.Equal(t, "https://nominatim.openstreetmap.org/search", cfg.FallbackBaseURL)
	assert.Equal(t, "https://api.open-meteo.com/v1/forecast", cfg.ForecastBaseURL)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("UPSTREAM_TIMEOUT", "15s")
	t.Setenv("SENSOR_TIMEOUT", "2s")
	t.Setenv("SENSOR_URL", "http://sensor.local/moisture")
	t.Setenv("GEOCODE_COUNT", "3")
	t.Setenv("GEOCODE_CACHE_SIZE", "64")
	t.Setenv("GEOCODE_BASE_URL", "http://localhost:9001/v1/search")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 2*time.Second, cfg.SensorTimeout)
	assert.Equal(t, "http://sensor.local/moisture", cfg.SensorURL)
	assert.Equal(t, 3, cfg.GeocodeCount)
	assert.Equal(t, 64, cfg.GeocodeCacheSize)
	assert.Equal(t, "http://localhost:9001/v1/search", cfg.GeocodeBaseURL)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeUpstreamTimeout(t *testing.T) {
	t.Setenv("UPSTREAM_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPSTREAM_TIMEOUT")
}

func TestLoad_InvalidGeocodeCount(t *testing.T) {
	t.Setenv("GEOCODE_COUNT", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEOCODE_COUNT")
}

func TestLoad_GeocodeCountTooLarge(t *testing.T) {
	t.Setenv("GEOCODE_COUNT", "50")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEOCODE_COUNT")
}

func TestLoad_InvalidCacheSize(t *testing.T) {
	t.Setenv("GEOCODE_CACHE_SIZE", "banana")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEOCODE_CACHE_SIZE")
}
