// Package crops holds the static crop reference table shown on the advisory
// dashboard. The data is compiled in; there is deliberately no store behind
// it.
package crops

import (
	"sort"
	"strconv"
	"strings"
)

// Crop describes the growing profile for one reference crop.
type Crop struct {
	Name       string `json:"name"`
	TempRangeC string `json:"temp_range_c"`
	WaterNeed  string `json:"water_need"`
	Harvest    string `json:"harvest"`
	Season     string `json:"season"`
	Fertilizer string `json:"fertilizer"`
}

var reference = []Crop{
	{
		Name:       "Wheat",
		TempRangeC: "10-25",
		WaterNeed:  "Moderate",
		Harvest:    "120 days",
		Season:     "Winter/Spring",
		Fertilizer: "Nitrogen-rich (urea) and phosphate fertilizers.",
	},
	{
		Name:       "Corn",
		TempRangeC: "18-27",
		WaterNeed:  "High",
		Harvest:    "90-120 days",
		Season:     "Spring/Summer",
		Fertilizer: "Balanced NPK with extra nitrogen.",
	},
	{
		Name:       "Rice",
		TempRangeC: "20-35",
		WaterNeed:  "Very high",
		Harvest:    "120-150 days",
		Season:     "Summer/Monsoon",
		Fertilizer: "Organic compost plus urea or DAP.",
	},
	{
		Name:       "Tomato",
		TempRangeC: "18-27",
		WaterNeed:  "Moderate",
		Harvest:    "60-85 days",
		Season:     "Summer",
		Fertilizer: "High potassium and phosphorus fertilizers.",
	},
	{
		Name:       "Soybean",
		TempRangeC: "15-30",
		WaterNeed:  "Moderate",
		Harvest:    "80-120 days",
		Season:     "Summer",
		Fertilizer: "Legume inoculants and low nitrogen (fixes its own).",
	},
}

// All returns the reference crops ordered by name.
func All() []Crop {
	out := make([]Crop, len(reference))
	copy(out, reference)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get looks up a crop by case-insensitive name.
func Get(name string) (Crop, bool) {
	for _, c := range reference {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Crop{}, false
}

// HarvestDays parses the lower bound of a harvest window such as
// "90-120 days" or "120 days".
func HarvestDays(harvest string) (int, bool) {
	fields := strings.Fields(harvest)
	if len(fields) == 0 {
		return 0, false
	}
	first := fields[0]
	if i := strings.IndexByte(first, '-'); i >= 0 {
		first = first[:i]
	}
	n, err := strconv.Atoi(first)
	if err != nil {
		return 0, false
	}
	return n, true
}
