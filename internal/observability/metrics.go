package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the advisory
// service's upstream calls.
type Metrics struct {
	// Shared fetch layer.
	FetchRetries  prometheus.Counter
	RateLimitHits prometheus.Counter

	// Upstream request durations, labelled by upstream={geocode,fallback_geocode,forecast,sensor}.
	UpstreamDuration *prometheus.HistogramVec

	// Geocoding resolution metrics.
	GeocodeRequests *prometheus.CounterVec // labels: provider, outcome={results,empty,error}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}

	// Reading fetch outcomes.
	WeatherFetches  *prometheus.CounterVec // labels: outcome={success,error}
	MoistureFetches *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FetchRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "farm_advisory",
			Name:      "fetch_retries_total",
			Help:      "Total HTTP fetch retries after rate-limited responses.",
		}),
		RateLimitHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "farm_advisory",
			Name:      "rate_limit_hits_total",
			Help:      "Total HTTP 429 responses received from upstreams.",
		}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "farm_advisory",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"upstream"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farm_advisory",
			Name:      "geocode_requests_total",
			Help:      "Geocoding provider attempts by provider and outcome.",
		}, []string{"provider", "outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farm_advisory",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		WeatherFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farm_advisory",
			Name:      "weather_fetches_total",
			Help:      "Current-weather fetches by outcome.",
		}, []string{"outcome"}),
		MoistureFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farm_advisory",
			Name:      "moisture_fetches_total",
			Help:      "Soil-moisture sensor fetches by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.FetchRetries,
		m.RateLimitHits,
		m.UpstreamDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.WeatherFetches,
		m.MoistureFetches,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchRetries:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "farm_advisory", Name: "fetch_retries_total"}),
		RateLimitHits:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "farm_advisory", Name: "rate_limit_hits_total"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "farm_advisory", Name: "upstream_request_duration_seconds"}, []string{"upstream"}),
		GeocodeRequests:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "farm_advisory", Name: "geocode_requests_total"}, []string{"provider", "outcome"}),
		GeocodeCache:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "farm_advisory", Name: "geocode_cache_total"}, []string{"result"}),
		WeatherFetches:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "farm_advisory", Name: "weather_fetches_total"}, []string{"outcome"}),
		MoistureFetches:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "farm_advisory", Name: "moisture_fetches_total"}, []string{"outcome"}),
	}
}
