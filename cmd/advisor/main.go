package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/agrosmart/farm-advisory/internal/adapter/http"
	"github.com/agrosmart/farm-advisory/internal/adapter/nominatim"
	"github.com/agrosmart/farm-advisory/internal/adapter/openmeteo"
	"github.com/agrosmart/farm-advisory/internal/adapter/sensor"
	"github.com/agrosmart/farm-advisory/internal/advisory"
	"github.com/agrosmart/farm-advisory/internal/config"
	"github.com/agrosmart/farm-advisory/internal/fetch"
	"github.com/agrosmart/farm-advisory/internal/geocode"
	"github.com/agrosmart/farm-advisory/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	upstream := fetch.NewClient(cfg.UpstreamTimeout, metrics, logger)

	primary := openmeteo.NewGeocodeClient(upstream, cfg.GeocodeBaseURL, metrics, logger)
	fallback := nominatim.NewClient(upstream, cfg.FallbackBaseURL, metrics, logger)
	resolver := geocode.NewCachedResolver(
		geocode.NewResolver(primary, fallback, metrics, logger),
		cfg.GeocodeCacheSize,
		metrics,
	)
	logger.Info("geocoding configured",
		"primary", primary.Name(), "fallback", fallback.Name(), "cache_size", cfg.GeocodeCacheSize)

	forecast := openmeteo.NewForecastClient(upstream, cfg.ForecastBaseURL, metrics, logger)

	// Sensor is feature-flagged via SENSOR_URL.
	var moisture advisory.MoistureReader
	if cfg.SensorURL != "" {
		sensorFetch := fetch.NewClient(cfg.SensorTimeout, metrics, logger)
		moisture = sensor.NewClient(sensorFetch, cfg.SensorURL, metrics, logger)
		logger.Info("soil-moisture sensor enabled", "url", cfg.SensorURL, "timeout", cfg.SensorTimeout)
	} else {
		logger.Info("soil-moisture sensor disabled")
	}

	svc := advisory.New(resolver, forecast, moisture, logger)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, cfg.GeocodeCount, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
