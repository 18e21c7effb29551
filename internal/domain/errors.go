package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// TransportError wraps network, timeout, and body-decode failures.
// These are never retried.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError carries a non-2xx upstream status and the response body.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
}

// RateLimited reports whether the upstream rejected the request with 429.
func (e *HTTPError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsRateLimited reports whether err is a 429 HTTPError, so callers can
// render a retry-shortly message instead of a generic failure.
func IsRateLimited(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.RateLimited()
}

// GeocodingError is an explicit error payload reported by a geocoding
// provider.
type GeocodingError struct {
	Reason string
}

func (e *GeocodingError) Error() string { return "geocoding: " + e.Reason }

// WeatherError is an explicit error payload reported by the forecast
// provider.
type WeatherError struct {
	Reason string
}

func (e *WeatherError) Error() string { return "weather: " + e.Reason }

// MalformedDataError marks a response that decoded but lacks the expected
// keys, or whose values have the wrong type.
type MalformedDataError struct {
	Reason string
}

func (e *MalformedDataError) Error() string { return "malformed data: " + e.Reason }
