package domain

import (
	"context"
	"time"
)

// WeatherReading is a point-in-time snapshot of current conditions at a
// coordinate. Numeric fields are pointers because providers omit fields they
// cannot measure, and "missing" must stay distinguishable from zero.
type WeatherReading struct {
	TemperatureC       *float64 `json:"temperature_c,omitempty"`
	HumidityPct        *float64 `json:"humidity_pct,omitempty"`
	WindKPH            *float64 `json:"wind_kph,omitempty"`
	PrecipMM           *float64 `json:"precip_mm,omitempty"`
	WeatherCode        *int     `json:"weather_code,omitempty"`
	Condition          string   `json:"condition"`
	RainProbabilityPct *int     `json:"rain_probability_pct,omitempty"`
	AsOf               string   `json:"as_of"`
}

// WeatherProvider fetches current conditions for a coordinate.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (WeatherReading, error)
}

// CurrentConditions is the decoded "current" block of a forecast response.
type CurrentConditions struct {
	Time         string
	TemperatureC *float64
	HumidityPct  *float64
	PrecipMM     *float64
	WindKPH      *float64
	WeatherCode  *int
}

// HourlySeries is the decoded same-day hourly precipitation-probability
// series. Times and probabilities are parallel slices.
type HourlySeries struct {
	Times              []string
	RainProbabilityPct []*int
}

// NewWeatherReading assembles a reading from provider data: the weather code
// is mapped to a condition string, the rain probability is aligned against
// the hourly series, and a wall-clock UTC timestamp fills in when the
// provider omits the observation time.
func NewWeatherReading(cur CurrentConditions, hourly HourlySeries) WeatherReading {
	r := WeatherReading{
		TemperatureC:       cur.TemperatureC,
		HumidityPct:        cur.HumidityPct,
		WindKPH:            cur.WindKPH,
		PrecipMM:           cur.PrecipMM,
		WeatherCode:        cur.WeatherCode,
		Condition:          DescribeWeatherCode(cur.WeatherCode),
		RainProbabilityPct: AlignRainProbability(hourly.Times, hourly.RainProbabilityPct, cur.Time),
		AsOf:               cur.Time,
	}
	if r.AsOf == "" {
		r.AsOf = clock.Now().UTC().Format(time.RFC3339)
	}
	return r
}

// weatherCodes maps WMO 4677 interpretation codes to the descriptions
// documented by the forecast provider.
var weatherCodes = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// DescribeWeatherCode maps a WMO weather code to a human-readable condition.
// Codes outside the table, or a missing code, map to "Unknown".
func DescribeWeatherCode(code *int) string {
	if code == nil {
		return "Unknown"
	}
	if desc, ok := weatherCodes[*code]; ok {
		return desc
	}
	return "Unknown"
}

// AlignRainProbability extracts the precipitation probability matching
// currentTime from the hourly series. Day-boundary rounding can leave the
// current hour out of the series; the first entry is used in that case.
// A missing or length-mismatched series yields nil.
func AlignRainProbability(times []string, probs []*int, currentTime string) *int {
	if currentTime == "" || len(times) == 0 || len(probs) == 0 || len(times) != len(probs) {
		return nil
	}
	for i, ts := range times {
		if ts == currentTime {
			return clampProbability(probs[i])
		}
	}
	return clampProbability(probs[0])
}

func clampProbability(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return &v
}
