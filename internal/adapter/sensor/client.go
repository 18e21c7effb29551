// Package sensor fetches soil-moisture readings from a farm-local HTTP
// endpoint emitting free-form JSON.
package sensor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/agrosmart/farm-advisory/internal/domain"
	"github.com/agrosmart/farm-advisory/internal/fetch"
	"github.com/agrosmart/farm-advisory/internal/observability"
)

// Client reads the configured moisture endpoint. A circuit breaker fails
// fast during sensor outages so dashboard requests do not pile up behind a
// dead device.
type Client struct {
	fetcher *fetch.Client
	url     string
	breaker *gobreaker.CircuitBreaker
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewClient creates a sensor client for the given endpoint URL.
func NewClient(fetcher *fetch.Client, url string, metrics *observability.Metrics, logger *slog.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "soil-sensor",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	return &Client{
		fetcher: fetcher,
		url:     url,
		breaker: breaker,
		metrics: metrics,
		logger:  logger,
	}
}

// Moisture returns the current soil-moisture percentage in [0,100]. Errors
// propagate to the caller; a stale or guessed reading would be worse than an
// explicit failure.
func (c *Client) Moisture(ctx context.Context) (float64, error) {
	start := time.Now()
	result, err := c.breaker.Execute(func() (any, error) {
		var payload map[string]any
		if err := c.fetcher.GetJSON(ctx, c.url, &payload); err != nil {
			return nil, err
		}
		return domain.ParseMoisture(payload)
	})
	c.metrics.UpstreamDuration.WithLabelValues("sensor").Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = &domain.TransportError{URL: c.url, Err: err}
		}
		c.metrics.MoistureFetches.WithLabelValues("error").Inc()
		c.logger.Warn("moisture fetch failed", "url", c.url, "error", err)
		return 0, err
	}

	c.metrics.MoistureFetches.WithLabelValues("success").Inc()
	return result.(float64), nil
}
