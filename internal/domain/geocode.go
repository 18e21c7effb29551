package domain

import "context"

// GeoCandidate is one possible resolution of a free-text place name.
// Country and Admin1 are best-effort; the fallback provider does not
// return them.
type GeoCandidate struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country,omitempty"`
	Admin1    string  `json:"admin1,omitempty"`
}

// GeoProvider resolves a place name into at most count candidates, in the
// provider's own ranking order.
type GeoProvider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// Search returns candidates for the given free-text place name.
	Search(ctx context.Context, name string, count int) ([]GeoCandidate, error)
}

// ValidCoordinates reports whether lat/lon form a plausible WGS-84 pair.
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
