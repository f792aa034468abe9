package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoPointValidate(t *testing.T) {
	tests := []struct {
		name    string
		point   *GeoPoint
		wantErr bool
	}{
		{"valid", NewGeoPoint(40.7128, -74.0060), false},
		{"bounds", &GeoPoint{Type: "Point", Coordinates: []float64{180, -90}}, false},
		{"nil", nil, true},
		{"polygon", &GeoPoint{Type: "Polygon", Coordinates: []float64{1, 2}}, true},
		{"three coordinates", &GeoPoint{Type: "Point", Coordinates: []float64{1, 2, 3}}, true},
		{"one coordinate", &GeoPoint{Type: "Point", Coordinates: []float64{1}}, true},
		{"longitude out of range", &GeoPoint{Type: "Point", Coordinates: []float64{181, 0}}, true},
		{"latitude out of range", &GeoPoint{Type: "Point", Coordinates: []float64{0, 91}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.point.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNearbyAEDJSONFlattensRecord(t *testing.T) {
	n := NearbyAED{AED: AED{LocationName: "City Hall"}, Distance: 1234.5}

	raw, err := json.Marshal(n)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "City Hall", out["locationName"])
	assert.Equal(t, 1234.5, out["distance"])
}
