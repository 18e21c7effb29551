package sensor

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosmart/farm-advisory/internal/domain"
	"github.com/agrosmart/farm-advisory/internal/fetch"
	"github.com/agrosmart/farm-advisory/internal/observability"
)

func testClient(url string) *Client {
	metrics := observability.NewMetricsForTesting()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(fetch.NewClient(2*time.Second, metrics, logger), url, metrics, logger)
}

func TestClient_Moisture_Fraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"moisture": 0.42}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Moisture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42.0, got)
}

func TestClient_Moisture_ClampedPercent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"value": 137}`))
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Moisture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100.0, got)
}

func TestClient_Moisture_MissingKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"battery": 88}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Moisture(context.Background())
	require.Error(t, err)

	var malformed *domain.MalformedDataError
	assert.ErrorAs(t, err, &malformed)
}

func TestClient_Moisture_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	ctx := context.Background()

	for range 3 {
		_, err := c.Moisture(ctx)
		require.Error(t, err)
	}
	assert.Equal(t, 3, hits)

	// Breaker is now open: the endpoint must not be contacted again.
	_, err := c.Moisture(ctx)
	require.Error(t, err)

	var transportErr *domain.TransportError
	assert.ErrorAs(t, err, &transportErr)
	assert.Equal(t, 3, hits)
}
