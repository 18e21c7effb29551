package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/agrosmart/farm-advisory/internal/advisory"
	"github.com/agrosmart/farm-advisory/internal/crops"
	"github.com/agrosmart/farm-advisory/internal/domain"
)

var validate = validator.New()

type geocodeQuery struct {
	Name  string `validate:"required"`
	Count int    `validate:"gte=1,lte=10"`
}

type coordinatesQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	q, ok := s.bindGeocodeQuery(w, r)
	if !ok {
		return
	}

	candidates := s.advisory.Candidates(r.Context(), q.Name, q.Count)
	if candidates == nil {
		// A failed lookup is an empty list on the wire, never null.
		candidates = []domain.GeoCandidate{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"candidates": candidates})
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		badRequest(w, "lat must be a number")
		return
	}
	lon, err := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err != nil {
		badRequest(w, "lon must be a number")
		return
	}
	if err := validate.Struct(coordinatesQuery{Lat: lat, Lon: lon}); err != nil {
		badRequest(w, "coordinates out of range")
		return
	}

	reading, err := s.advisory.CurrentWeather(r.Context(), lat, lon)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

func (s *Server) handleWeatherForPlace(w http.ResponseWriter, r *http.Request) {
	q, ok := s.bindGeocodeQuery(w, r)
	if !ok {
		return
	}

	result, err := s.advisory.WeatherForPlace(r.Context(), q.Name, q.Count)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMoisture(w http.ResponseWriter, r *http.Request) {
	value, err := s.advisory.SoilMoisture(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"moisture_pct": value})
}

func (s *Server) handleCrops(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"crops": crops.All()})
}

type cropResponse struct {
	crops.Crop
	HarvestDays *int `json:"harvest_days,omitempty"`
}

func (s *Server) handleCrop(w http.ResponseWriter, r *http.Request) {
	crop, ok := crops.Get(r.PathValue("name"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown crop"})
		return
	}

	resp := cropResponse{Crop: crop}
	if days, ok := crops.HarvestDays(crop.Harvest); ok {
		resp.HarvestDays = &days
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) bindGeocodeQuery(w http.ResponseWriter, r *http.Request) (geocodeQuery, bool) {
	q := geocodeQuery{
		Name:  strings.TrimSpace(r.URL.Query().Get("name")),
		Count: s.defaultCount,
	}
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(w, "count must be an integer")
			return geocodeQuery{}, false
		}
		q.Count = n
	}
	if err := validate.Struct(q); err != nil {
		badRequest(w, "name is required and count must be 1-10")
		return geocodeQuery{}, false
	}
	return q, true
}

// writeError maps pipeline errors to API responses. Rate limits get their
// own status and message so the UI can offer a manual retry.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsRateLimited(err):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "the weather provider is rate limiting requests, try again shortly",
		})
	case errors.Is(err, advisory.ErrNoCandidates):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "place not found, refine the name or supply coordinates"})
	case errors.Is(err, advisory.ErrNoSensor):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no soil-moisture sensor configured"})
	default:
		s.logger.Error("upstream request failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
