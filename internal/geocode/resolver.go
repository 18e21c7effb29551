// Package geocode implements the two-provider resolution strategy: try the
// primary geocoder, fall back to the secondary, and degrade to an empty
// candidate list when both come up short.
package geocode

import (
	"context"
	"log/slog"

	"github.com/agrosmart/farm-advisory/internal/domain"
	"github.com/agrosmart/farm-advisory/internal/observability"
)

// outcome classifies a single provider attempt. Empty results and provider
// failure are distinct in metrics but both mean "try the next provider".
type outcome string

const (
	outcomeResults outcome = "results"
	outcomeEmpty   outcome = "empty"
	outcomeError   outcome = "error"
)

// CandidateResolver resolves a place name into candidates. Implemented by
// Resolver and CachedResolver.
type CandidateResolver interface {
	Resolve(ctx context.Context, name string, count int) []domain.GeoCandidate
}

// Resolver queries providers in order and returns the first non-empty result
// set. Resolution never returns an error: a fully failed lookup yields an
// empty list, which is the caller's cue to ask the user to refine input.
type Resolver struct {
	providers []domain.GeoProvider
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewResolver creates a Resolver trying primary first, then fallback.
// Either provider may be nil.
func NewResolver(primary, fallback domain.GeoProvider, metrics *observability.Metrics, logger *slog.Logger) *Resolver {
	providers := make([]domain.GeoProvider, 0, 2)
	for _, p := range []domain.GeoProvider{primary, fallback} {
		if p != nil {
			providers = append(providers, p)
		}
	}
	return &Resolver{providers: providers, metrics: metrics, logger: logger}
}

// Resolve returns at most count candidates in the winning provider's order.
func (r *Resolver) Resolve(ctx context.Context, name string, count int) []domain.GeoCandidate {
	for _, p := range r.providers {
		candidates, result := r.search(ctx, p, name, count)
		if result == outcomeResults {
			return candidates
		}
	}
	return []domain.GeoCandidate{}
}

func (r *Resolver) search(ctx context.Context, p domain.GeoProvider, name string, count int) ([]domain.GeoCandidate, outcome) {
	candidates, err := p.Search(ctx, name, count)
	switch {
	case err != nil:
		r.logger.Warn("geocode provider failed",
			"provider", p.Name(),
			"place", name,
			"error", err,
		)
		r.metrics.GeocodeRequests.WithLabelValues(p.Name(), string(outcomeError)).Inc()
		return nil, outcomeError
	case len(candidates) == 0:
		r.metrics.GeocodeRequests.WithLabelValues(p.Name(), string(outcomeEmpty)).Inc()
		return nil, outcomeEmpty
	default:
		r.metrics.GeocodeRequests.WithLabelValues(p.Name(), string(outcomeResults)).Inc()
		if len(candidates) > count {
			candidates = candidates[:count]
		}
		return candidates, outcomeResults
	}
}
