// Command mocksensor serves a fake soil-moisture endpoint for local
// development. The reading follows a slow random walk so repeated polls look
// like a real probe. It can also simulate rate limiting to exercise the
// fetcher's retry path.
//
// Usage:
//
//	go run ./cmd/mocksensor -addr :9090 -key soil_moisture -rate-limit 0.2
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"time"
)

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	key := flag.String("key", "moisture", "JSON key to report the reading under")
	fraction := flag.Bool("fraction", false, "report the reading as a 0-1 fraction instead of a percentage")
	rateLimit := flag.Float64("rate-limit", 0, "probability (0-1) of answering 429 with a Retry-After header")
	start := flag.Float64("start", 40, "initial moisture percentage")
	flag.Parse()

	if *rateLimit < 0 || *rateLimit > 1 {
		fmt.Fprintln(os.Stderr, "-rate-limit must be between 0 and 1")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	probe := &probe{value: *start}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if *rateLimit > 0 && rand.Float64() < *rateLimit {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			logger.Info("simulated rate limit", "remote", r.RemoteAddr)
			return
		}

		value := probe.next()
		if *fraction {
			value /= 100
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]float64{*key: value}) //nolint:errcheck // best-effort response
		logger.Info("reading served", "key", *key, "value", value, "remote", r.RemoteAddr)
	})

	logger.Info("mock sensor listening", "addr", *addr, "key", *key, "fraction", *fraction)
	srv := &http.Server{
		Addr:        *addr,
		Handler:     mux,
		ReadTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// probe holds the random-walk state. Steps are small and the value is kept
// inside 5-95 so the advisory side never sees a clamped extreme by accident.
type probe struct {
	mu    sync.Mutex
	value float64
}

func (p *probe) next() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.value += (rand.Float64() - 0.5) * 4
	if p.value < 5 {
		p.value = 5
	}
	if p.value > 95 {
		p.value = 95
	}
	return p.value
}
