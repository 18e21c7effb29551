package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream call timeouts. Sensor endpoints sit on farm networks and
	// should fail faster than the public weather APIs.
	UpstreamTimeout time.Duration
	SensorTimeout   time.Duration

	// SensorURL is the soil-moisture endpoint; empty disables the sensor path.
	SensorURL string

	// Geocoding behaviour.
	GeocodeCount     int // default candidate count per lookup
	GeocodeCacheSize int

	// Provider base URLs, overridable for testing against local stubs.
	GeocodeBaseURL  string
	FallbackBaseURL string
	ForecastBaseURL string
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file is loaded first as a development convenience;
// its absence is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	upstreamTimeout, err := parseDuration("UPSTREAM_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	sensorTimeout, err := parseDuration("SENSOR_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	geocodeCount, err := parseInt("GEOCODE_COUNT", 5, 1, 10)
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseInt("GEOCODE_CACHE_SIZE", 256, 1, 100000)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		UpstreamTimeout: upstreamTimeout,
		SensorTimeout:   sensorTimeout,
		SensorURL:       os.Getenv("SENSOR_URL"),

		GeocodeCount:     geocodeCount,
		GeocodeCacheSize: cacheSize,

		GeocodeBaseURL:  envOrDefault("GEOCODE_BASE_URL", "https://geocoding-api.open-meteo.com/v1/search"),
		FallbackBaseURL: envOrDefault("FALLBACK_GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org/search"),
		ForecastBaseURL: envOrDefault("FORECAST_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	raw := envOrDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return d, nil
}

func parseInt(key string, def, min, max int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || n > max {
		return 0, fmt.Errorf("invalid %s: %q (want %d-%d)", key, raw, min, max)
	}
	return n, nil
}
