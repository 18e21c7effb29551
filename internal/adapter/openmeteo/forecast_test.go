package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosmart/farm-advisory/internal/domain"
	"github.com/agrosmart/farm-advisory/internal/fetch"
	"github.com/agrosmart/farm-advisory/internal/observability"
)

func testForecastClient(baseURL string) *ForecastClient {
	metrics := observability.NewMetricsForTesting()
	return NewForecastClient(fetch.NewClient(5*time.Second, metrics, discardLogger()), baseURL, metrics, discardLogger())
}

const forecastBody = `{
	"current": {
		"time": "2024-01-01T11:00",
		"temperature_2m": 21.4,
		"relative_humidity_2m": 63,
		"precipitation": 0.1,
		"weather_code": 61,
		"wind_speed_10m": 12.3
	},
	"hourly": {
		"time": ["2024-01-01T10:00", "2024-01-01T11:00"],
		"precipitation_probability": [20, 55]
	}
}`

func TestForecastClient_CurrentWeather_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "-1.28333", q.Get("latitude"))
		assert.Equal(t, "36.81667", q.Get("longitude"))
		assert.Equal(t, "temperature_2m,relative_humidity_2m,precipitation,weather_code,wind_speed_10m", q.Get("current"))
		assert.Equal(t, "precipitation_probability", q.Get("hourly"))
		assert.Equal(t, "1", q.Get("forecast_days"))
		assert.Equal(t, "auto", q.Get("timezone"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	reading, err := testForecastClient(srv.URL).CurrentWeather(context.Background(), -1.28333, 36.81667)
	require.NoError(t, err)

	require.NotNil(t, reading.TemperatureC)
	assert.Equal(t, 21.4, *reading.TemperatureC)
	require.NotNil(t, reading.HumidityPct)
	assert.Equal(t, 63.0, *reading.HumidityPct)
	require.NotNil(t, reading.WindKPH)
	assert.Equal(t, 12.3, *reading.WindKPH)
	require.NotNil(t, reading.WeatherCode)
	assert.Equal(t, 61, *reading.WeatherCode)
	assert.Equal(t, "Slight rain", reading.Condition)
	require.NotNil(t, reading.RainProbabilityPct)
	assert.Equal(t, 55, *reading.RainProbabilityPct)
	assert.Equal(t, "2024-01-01T11:00", reading.AsOf)
}

func TestForecastClient_CurrentWeather_Idempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	c := testForecastClient(srv.URL)
	first, err := c.CurrentWeather(context.Background(), -1.28333, 36.81667)
	require.NoError(t, err)
	second, err := c.CurrentWeather(context.Background(), -1.28333, 36.81667)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestForecastClient_CurrentWeather_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error": true, "reason": "Latitude must be in range of -90 to 90"}`))
	}))
	defer srv.Close()

	_, err := testForecastClient(srv.URL).CurrentWeather(context.Background(), 95, 0)
	require.Error(t, err)

	var weatherErr *domain.WeatherError
	require.ErrorAs(t, err, &weatherErr)
	assert.Contains(t, weatherErr.Reason, "Latitude")
}

func TestForecastClient_CurrentWeather_MissingHourlySeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"current": {"time": "2024-01-01T11:00", "temperature_2m": 18.0, "weather_code": 2}
		}`))
	}))
	defer srv.Close()

	reading, err := testForecastClient(srv.URL).CurrentWeather(context.Background(), 0, 0)
	require.NoError(t, err)

	assert.Nil(t, reading.RainProbabilityPct, "missing hourly series is not an error")
	assert.Equal(t, "Partly cloudy", reading.Condition)
	assert.Nil(t, reading.HumidityPct)
}

func TestForecastClient_CurrentWeather_RateLimitSurfaces(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Header().Set("Retry-After", "0.5")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testForecastClient(srv.URL).CurrentWeather(context.Background(), 0, 0)
	require.Error(t, err)
	assert.True(t, domain.IsRateLimited(err))
	assert.Equal(t, 3, hits, "fetch layer retries twice before giving up")
}
