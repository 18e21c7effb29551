package openmeteo

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agrosmart/farm-advisory/internal/domain"
	"github.com/agrosmart/farm-advisory/internal/fetch"
	"github.com/agrosmart/farm-advisory/internal/observability"
)

// currentFields are the instantaneous variables requested from the forecast
// API, comma-joined into the "current" query parameter.
var currentFields = []string{
	"temperature_2m",
	"relative_humidity_2m",
	"precipitation",
	"weather_code",
	"wind_speed_10m",
}

// ForecastClient implements domain.WeatherProvider using the Open-Meteo
// forecast API.
type ForecastClient struct {
	fetcher *fetch.Client
	baseURL string
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewForecastClient creates the current-weather client.
func NewForecastClient(fetcher *fetch.Client, baseURL string, metrics *observability.Metrics, logger *slog.Logger) *ForecastClient {
	return &ForecastClient{
		fetcher: fetcher,
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// CurrentWeather fetches current conditions plus the same-day hourly
// precipitation-probability series, in the location's local time zone, and
// assembles a reading. Retrying is the shared fetcher's job; a persistent
// 429 surfaces to the caller as *domain.HTTPError.
func (c *ForecastClient) CurrentWeather(ctx context.Context, lat, lon float64) (domain.WeatherReading, error) {
	params := url.Values{
		"latitude":      {formatCoordinate(lat)},
		"longitude":     {formatCoordinate(lon)},
		"current":       {strings.Join(currentFields, ",")},
		"hourly":        {"precipitation_probability"},
		"forecast_days": {"1"},
		"timezone":      {"auto"},
	}

	start := time.Now()
	var payload forecastResponse
	err := c.fetcher.GetJSON(ctx, c.baseURL+"?"+params.Encode(), &payload)
	c.metrics.UpstreamDuration.WithLabelValues("forecast").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.WeatherFetches.WithLabelValues("error").Inc()
		return domain.WeatherReading{}, err
	}

	if payload.Error {
		reason := payload.Reason
		if reason == "" {
			reason = "weather API error"
		}
		c.metrics.WeatherFetches.WithLabelValues("error").Inc()
		return domain.WeatherReading{}, &domain.WeatherError{Reason: reason}
	}

	reading := domain.NewWeatherReading(
		domain.CurrentConditions{
			Time:         payload.Current.Time,
			TemperatureC: payload.Current.Temperature,
			HumidityPct:  payload.Current.Humidity,
			PrecipMM:     payload.Current.Precipitation,
			WindKPH:      payload.Current.WindSpeed,
			WeatherCode:  payload.Current.WeatherCode,
		},
		domain.HourlySeries{
			Times:              payload.Hourly.Time,
			RainProbabilityPct: payload.Hourly.PrecipitationProbability,
		},
	)

	c.metrics.WeatherFetches.WithLabelValues("success").Inc()
	return reading, nil
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Open-Meteo forecast API response types.

type forecastResponse struct {
	Error   bool   `json:"error"`
	Reason  string `json:"reason"`
	Current struct {
		Time          string   `json:"time"`
		Temperature   *float64 `json:"temperature_2m"`
		Humidity      *float64 `json:"relative_humidity_2m"`
		Precipitation *float64 `json:"precipitation"`
		WeatherCode   *int     `json:"weather_code"`
		WindSpeed     *float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Hourly struct {
		Time                     []string `json:"time"`
		PrecipitationProbability []*int   `json:"precipitation_probability"`
	} `json:"hourly"`
}
