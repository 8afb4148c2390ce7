package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		expected bool
	}{
		{"continental US", 45, -100, true},
		{"bounds inclusive", 90, -180, true},
		{"latitude past pole", 95, -100, false},
		{"longitude past antimeridian", 10, 180.5, false},
		{"NaN latitude", math.NaN(), 10, false},
		{"NaN longitude", 10, math.NaN(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidCoordinates(tt.lat, tt.lon))
		})
	}
}

func TestPartitionGeo(t *testing.T) {
	records := Normalize([]RawRow{
		{ColShape: "a", ColLatitude: "45", ColLongitude: "-100"},
		{ColShape: "b", ColLatitude: "95", ColLongitude: "-100"},
		{ColShape: "c", ColLatitude: "", ColLongitude: "-100"},
		{ColShape: "d", ColLatitude: "-33.9", ColLongitude: "151.2"},
	})

	valid, invalid := PartitionGeo(records)

	assert.Equal(t, []string{"a", "d"}, shapes(valid))
	assert.Equal(t, []string{"b", "c"}, shapes(invalid))
}

func shapes(records []SightingRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Shape
	}
	return out
}
