package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// moistureKeys is the lookup priority for the moisture value inside an
// arbitrary sensor JSON document.
var moistureKeys = []string{"moisture", "soil_moisture", "value"}

// ParseMoisture extracts a soil-moisture percentage from a sensor payload.
// Values in [0,1] are treated as fractions and scaled to percent; the result
// is clamped to [0,100] to absorb out-of-range sensor noise.
func ParseMoisture(payload map[string]any) (float64, error) {
	for _, key := range moistureKeys {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		v, err := toFloat(raw)
		if err != nil {
			return 0, &MalformedDataError{Reason: fmt.Sprintf("key %q: %v", key, err)}
		}
		if v >= 0 && v <= 1 {
			v *= 100
		}
		return clampPercent(v), nil
	}
	return 0, &MalformedDataError{Reason: "no moisture, soil_moisture, or value key"}
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("non-numeric value of type %T", raw)
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
