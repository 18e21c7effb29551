// Package nominatim implements the fallback geocoding provider against the
// OpenStreetMap Nominatim search API.
package nominatim

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

// Client implements domain.GeoProvider. It is consulted only when the
// primary provider returns nothing or fails.
type Client struct {
	fetcher *fetch.Client
	baseURL string
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewClient creates the fallback geocoding client.
func NewClient(fetcher *fetch.Client, baseURL string, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		fetcher: fetcher,
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

func (c *Client) Name() string { return "nominatim" }

// Search performs a free-text lookup. Nominatim returns coordinates as
// strings and no structured country/region fields, so candidates carry only
// name and coordinates; entries with unparseable coordinates are dropped.
func (c *Client) Search(ctx context.Context, name string, count int) ([]domain.GeoCandidate, error) {
	params := url.Values{
		"q":      {name},
		"format": {"json"},
		"limit":  {strconv.Itoa(count)},
	}

	start := time.Now()
	var payload []searchResult
	err := c.fetcher.GetJSON(ctx, c.baseURL+"?"+params.Encode(), &payload)
	c.metrics.UpstreamDuration.WithLabelValues("fallback_geocode").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.GeoCandidate, 0, len(payload))
	for _, r := range payload {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil || !domain.ValidCoordinates(lat, lon) {
			c.logger.Debug("dropping malformed fallback entry", "place", name, "lat", r.Lat, "lon", r.Lon)
			continue
		}
		candidateName := r.DisplayName
		if candidateName == "" {
			candidateName = r.Name
		}
		if candidateName == "" {
			candidateName = name
		}
		candidates = append(candidates, domain.GeoCandidate{
			Name:      candidateName,
			Latitude:  lat,
			Longitude: lon,
		})
	}
	return candidates, nil
}

// Nominatim search API response type. The endpoint returns a bare JSON array.

type searchResult struct {
	DisplayName string `json:"display_name"`
	Name        string `json:"name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}
