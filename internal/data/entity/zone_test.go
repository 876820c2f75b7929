package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZoneOccupancyPercent(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		occupied int
		want     int
	}{
		{"empty", 100, 0, 0},
		{"three quarters", 200, 150, 75},
		{"full", 100, 100, 100},
		{"rounds to nearest", 3000, 1200, 40},
		{"rounds half up", 8, 1, 13},
		{"zero capacity counts as full", 0, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zone := &Zone{TotalSlots: tt.total, OccupiedSlots: tt.occupied}
			assert.Equal(t, tt.want, zone.OccupancyPercent())
		})
	}
}

func TestZoneRemainingSlots(t *testing.T) {
	zone := &Zone{TotalSlots: 200, OccupiedSlots: 150}
	assert.Equal(t, 50, zone.RemainingSlots())
}

func TestZoneHasCoordinates(t *testing.T) {
	lat, lon := 9.9776, 76.2759

	assert.True(t, (&Zone{Lat: &lat, Lon: &lon}).HasCoordinates())
	assert.False(t, (&Zone{Lat: &lat}).HasCoordinates())
	assert.False(t, (&Zone{}).HasCoordinates())
}
