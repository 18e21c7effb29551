// Package openmeteo implements the primary geocoding and forecast providers
// against the Open-Meteo APIs.
package openmeteo

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/agrosmart/farm-advisory/internal/domain"
	"github.com/agrosmart/farm-advisory/internal/fetch"
	"github.com/agrosmart/farm-advisory/internal/observability"
)

// GeocodeClient implements domain.GeoProvider using the Open-Meteo geocoding
// search API.
type GeocodeClient struct {
	fetcher *fetch.Client
	baseURL string
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewGeocodeClient creates the primary geocoding client.
func NewGeocodeClient(fetcher *fetch.Client, baseURL string, metrics *observability.Metrics, logger *slog.Logger) *GeocodeClient {
	return &GeocodeClient{
		fetcher: fetcher,
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

func (c *GeocodeClient) Name() string { return "open-meteo" }

// Search resolves a place name to candidates. An explicit error payload from
// the provider becomes *domain.GeocodingError; entries without numeric
// coordinates are dropped, not fatal.
func (c *GeocodeClient) Search(ctx context.Context, name string, count int) ([]domain.GeoCandidate, error) {
	params := url.Values{
		"name":     {name},
		"count":    {strconv.Itoa(count)},
		"language": {"en"},
		"format":   {"json"},
	}

	start := time.Now()
	var payload geocodeResponse
	err := c.fetcher.GetJSON(ctx, c.baseURL+"?"+params.Encode(), &payload)
	c.metrics.UpstreamDuration.WithLabelValues("geocode").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	if payload.Error {
		reason := payload.Reason
		if reason == "" {
			reason = "geocoding API error"
		}
		return nil, &domain.GeocodingError{Reason: reason}
	}

	candidates := make([]domain.GeoCandidate, 0, len(payload.Results))
	for _, r := range payload.Results {
		if r.Latitude == nil || r.Longitude == nil || !domain.ValidCoordinates(*r.Latitude, *r.Longitude) {
			c.logger.Debug("dropping malformed geocoding entry", "place", name, "entry_name", r.Name)
			continue
		}
		candidateName := r.Name
		if candidateName == "" {
			candidateName = name
		}
		candidates = append(candidates, domain.GeoCandidate{
			Name:      candidateName,
			Latitude:  *r.Latitude,
			Longitude: *r.Longitude,
			Country:   r.Country,
			Admin1:    r.Admin1,
		})
	}
	return candidates, nil
}

// Open-Meteo geocoding API response types.

type geocodeResponse struct {
	Error   bool            `json:"error"`
	Reason  string          `json:"reason"`
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Country   string   `json:"country"`
	Admin1    string   `json:"admin1"`
}
