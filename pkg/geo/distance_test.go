package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantMeters             float64
		delta                  float64
	}{
		{"same point", 40.7128, -74.0060, 40.7128, -74.0060, 0, 0.001},
		{"new york to london", 40.7128, -74.0060, 51.5074, -0.1278, 5571000, 10000},
		{"san francisco to los angeles", 37.7749, -122.4194, 34.0522, -118.2437, 559000, 5000},
		{"lower manhattan", 40.7128, -74.0060, 40.70, -74.00, 1500, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantMeters, Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2), tt.delta)
		})
	}
}

func TestBoundingBoxContainsRadius(t *testing.T) {
	minLat, minLon, maxLat, maxLon, ok := BoundingBox(40.7128, -74.0060, 200000)
	assert.True(t, ok)

	// Points exactly 200 km north and east must be inside the box.
	assert.LessOrEqual(t, minLat, 40.7128-1.79)
	assert.GreaterOrEqual(t, maxLat, 40.7128+1.79)
	assert.Less(t, minLon, -74.0060-2.3)
	assert.Greater(t, maxLon, -74.0060+2.3)
}

func TestBoundingBoxRejectsWrap(t *testing.T) {
	_, _, _, _, ok := BoundingBox(89.5, 0, 200000)
	assert.False(t, ok)

	_, _, _, _, ok = BoundingBox(0, 179.5, 200000)
	assert.False(t, ok)
}
