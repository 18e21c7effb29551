// Package domain models the farm-advisory weather core: geocoding
// candidates, current-weather readings, and soil-moisture parsing.
//
// # Weather Codes
//
// Current conditions carry a WMO 4677 interpretation code (0–99). The
// provider documents 28 of them (clear/cloud/fog/drizzle/rain/snow/
// thunderstorm variants); anything outside the table, or a missing code,
// is rendered as "Unknown". See [DescribeWeatherCode].
//
// # Rain-Probability Alignment
//
// The forecast provider returns current conditions and a separate hourly
// precipitation-probability series for the same day, in the location's
// local time zone. The probability for "now" is the hourly entry whose
// timestamp equals the current-observation timestamp. When the current
// timestamp is absent from the series (rounding near day boundaries) the
// first hourly entry is used instead; when the series is missing or its
// lengths disagree, the probability is absent. The first-entry fallback is
// a known approximation around midnight. See [AlignRainProbability].
//
// # Soil Moisture
//
// Sensor endpoints are free-form JSON. The moisture value is looked up
// under "moisture", "soil_moisture", then "value"; readings in [0,1] are
// treated as fractions and scaled to percent; the result is always clamped
// to [0,100]. See [ParseMoisture].
package domain
