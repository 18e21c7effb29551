// Package fetch provides the shared HTTP-JSON client used by every upstream
// adapter: a GET with a fixed identity, a per-call timeout, and bounded
// retry-on-rate-limit semantics.
package fetch

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/agrosmart/farm-advisory/internal/domain"
	"github.com/agrosmart/farm-advisory/internal/observability"
)

// userAgent identifies this service to upstream APIs. Nominatim in
// particular rejects clients without a meaningful User-Agent.
const userAgent = "AgroSmart/1.0 (+farm-advisory)"

const (
	maxAttempts = 3
	minBackoff  = 500 * time.Millisecond
	maxBackoff  = 10 * time.Second
)

// Client performs HTTP GETs expecting JSON bodies. Only HTTP 429 is retried,
// up to maxAttempts total; every other failure returns immediately.
type Client struct {
	httpClient *http.Client
	clock      clockwork.Clock
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a fetch client with the given per-request timeout.
func NewClient(timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		clock:      clockwork.NewRealClock(),
		metrics:    metrics,
		logger:     logger,
	}
}

// GetJSON fetches url and decodes the response body into v.
//
// A 429 response triggers a blocking backoff (the server's Retry-After when
// parseable, else 1.5×(attempt+1) seconds, clamped to [500ms, 10s]) and a
// retry while attempts remain; a persistent 429, like any other non-200
// status, is returned as *domain.HTTPError. Network, timeout, and decode
// failures are returned as *domain.TransportError without retrying.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return &domain.TransportError{URL: url, Err: err}
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return &domain.TransportError{URL: url, Err: err}
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return &domain.TransportError{URL: url, Err: err}
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < maxAttempts-1 {
			delay := retryDelay(attempt, resp.Header.Get("Retry-After"))
			c.metrics.RateLimitHits.Inc()
			c.metrics.FetchRetries.Inc()
			c.logger.Warn("rate limited, backing off",
				"url", url,
				"attempt", attempt+1,
				"delay", delay,
			)
			if err := c.sleep(ctx, delay); err != nil {
				return &domain.TransportError{URL: url, Err: err}
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			if resp.StatusCode == http.StatusTooManyRequests {
				c.metrics.RateLimitHits.Inc()
			}
			return &domain.HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
		}

		if err := json.Unmarshal(body, v); err != nil {
			return &domain.TransportError{URL: url, Err: err}
		}
		return nil
	}
}

// retryDelay computes the backoff before the next attempt: the server's
// Retry-After seconds when parseable, else 1.5×(attempt+1), clamped to
// [minBackoff, maxBackoff].
func retryDelay(attempt int, retryAfter string) time.Duration {
	seconds := 1.5 * float64(attempt+1)
	if retryAfter != "" {
		if s, err := strconv.ParseFloat(retryAfter, 64); err == nil {
			seconds = s
		}
	}

	d := time.Duration(seconds * float64(time.Second))
	if d < minBackoff {
		return minBackoff
	}
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.clock.After(d):
		return nil
	}
}
