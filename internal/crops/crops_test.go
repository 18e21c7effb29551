package crops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_SortedAndComplete(t *testing.T) {
	all := All()
	require.Len(t, all, 5)

	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Corn", "Rice", "Soybean", "Tomato", "Wheat"}, names)
}

func TestGet_CaseInsensitive(t *testing.T) {
	c, ok := Get("rice")
	require.True(t, ok)
	assert.Equal(t, "Rice", c.Name)
	assert.Equal(t, "Very high", c.WaterNeed)

	_, ok = Get("Turnip")
	assert.False(t, ok)
}

func TestHarvestDays(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"120 days", 120, true},
		{"90-120 days", 90, true},
		{"nonsense", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := HarvestDays(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
