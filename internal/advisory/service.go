// Package advisory orchestrates the geocode-then-weather pipeline and sensor
// reads behind the HTTP API.
package advisory

import (
	"context"
	"errors"
	"log/slog"

	"github.com/agrosmart/farm-advisory/internal/domain"
	"github.com/agrosmart/farm-advisory/internal/geocode"
)

var (
	// ErrNoCandidates means neither geocoding provider could resolve the
	// place name. The caller should ask the user to refine their input or
	// supply coordinates directly.
	ErrNoCandidates = errors.New("no geocoding candidates for place")

	// ErrNoSensor means no soil-moisture endpoint is configured.
	ErrNoSensor = errors.New("no sensor endpoint configured")
)

// MoistureReader reads the current soil-moisture percentage.
type MoistureReader interface {
	Moisture(ctx context.Context) (float64, error)
}

// Service wires the resolver, weather provider, and sensor into the
// operations the API exposes. All calls are synchronous; repeating one only
// changes its result because the remote data changed.
type Service struct {
	resolver geocode.CandidateResolver
	weather  domain.WeatherProvider
	sensor   MoistureReader
	logger   *slog.Logger
}

// PlaceWeather pairs the chosen geocoding candidate with its reading.
type PlaceWeather struct {
	Place   domain.GeoCandidate   `json:"place"`
	Reading domain.WeatherReading `json:"reading"`
}

// New creates the advisory service. Pass a nil sensor when no moisture
// endpoint is configured.
func New(resolver geocode.CandidateResolver, weather domain.WeatherProvider, sensor MoistureReader, logger *slog.Logger) *Service {
	return &Service{
		resolver: resolver,
		weather:  weather,
		sensor:   sensor,
		logger:   logger,
	}
}

// Candidates resolves a place name into at most count candidates. Failure
// degrades to an empty list; see the resolver.
func (s *Service) Candidates(ctx context.Context, name string, count int) []domain.GeoCandidate {
	return s.resolver.Resolve(ctx, name, count)
}

// CurrentWeather fetches a reading for explicit coordinates.
func (s *Service) CurrentWeather(ctx context.Context, lat, lon float64) (domain.WeatherReading, error) {
	return s.weather.CurrentWeather(ctx, lat, lon)
}

// WeatherForPlace resolves name and fetches weather for the top candidate.
// Disambiguating among candidates is the UI's concern; this convenience path
// takes the winning provider's best match.
func (s *Service) WeatherForPlace(ctx context.Context, name string, count int) (PlaceWeather, error) {
	candidates := s.resolver.Resolve(ctx, name, count)
	if len(candidates) == 0 {
		return PlaceWeather{}, ErrNoCandidates
	}

	top := candidates[0]
	reading, err := s.weather.CurrentWeather(ctx, top.Latitude, top.Longitude)
	if err != nil {
		return PlaceWeather{}, err
	}

	return PlaceWeather{Place: top, Reading: reading}, nil
}

// SoilMoisture reads the configured sensor.
func (s *Service) SoilMoisture(ctx context.Context) (float64, error) {
	if s.sensor == nil {
		return 0, ErrNoSensor
	}
	return s.sensor.Moisture(ctx)
}

// CheckReadiness reports whether the service can serve requests.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.resolver == nil || s.weather == nil {
		return errors.New("weather pipeline not configured")
	}
	return nil
}
