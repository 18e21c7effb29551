// Package http exposes the advisory API plus health, readiness, and metrics
// endpoints.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agrosmart/farm-advisory/internal/advisory"
	"github.com/agrosmart/farm-advisory/internal/domain"
)

// Advisory is the subset of the advisory service the API depends on.
type Advisory interface {
	Candidates(ctx context.Context, name string, count int) []domain.GeoCandidate
	CurrentWeather(ctx context.Context, lat, lon float64) (domain.WeatherReading, error)
	WeatherForPlace(ctx context.Context, name string, count int) (advisory.PlaceWeather, error)
	SoilMoisture(ctx context.Context) (float64, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the advisory HTTP API.
type Server struct {
	httpServer   *http.Server
	advisory     Advisory
	defaultCount int
	logger       *slog.Logger
}

// NewServer creates an HTTP server with the advisory API and operational
// routes. defaultCount is the candidate count used when the request omits
// one.
func NewServer(addr string, adv Advisory, defaultCount int, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		advisory:     adv,
		defaultCount: defaultCount,
		logger:       logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/geocode", s.handleGeocode)
	mux.HandleFunc("GET /api/v1/weather", s.handleWeather)
	mux.HandleFunc("GET /api/v1/weather/place", s.handleWeatherForPlace)
	mux.HandleFunc("GET /api/v1/moisture", s.handleMoisture)
	mux.HandleFunc("GET /api/v1/crops", s.handleCrops)
	mux.HandleFunc("GET /api/v1/crops/{name}", s.handleCrop)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.advisory.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
