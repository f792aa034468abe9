package models

import (
	"errors"
	"fmt"
	"math"
)

// GeoPointType is the only GeoJSON geometry accepted for AED locations.
const GeoPointType = "Point"

// GeoPoint is a GeoJSON Point. Coordinates are [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a Point from latitude and longitude.
func NewGeoPoint(lat, lon float64) *GeoPoint {
	return &GeoPoint{Type: GeoPointType, Coordinates: []float64{lon, lat}}
}

func (p *GeoPoint) Longitude() float64 { return p.Coordinates[0] }

func (p *GeoPoint) Latitude() float64 { return p.Coordinates[1] }

// Validate checks the geometry type, the pair shape and coordinate ranges.
func (p *GeoPoint) Validate() error {
	if p == nil {
		return errors.New("location is empty")
	}
	if p.Type != GeoPointType {
		return fmt.Errorf("location type must be %q, got %q", GeoPointType, p.Type)
	}
	if len(p.Coordinates) != 2 {
		return fmt.Errorf("location coordinates must be [longitude, latitude], got %d values", len(p.Coordinates))
	}
	if err := ValidateLatLon(p.Coordinates[1], p.Coordinates[0]); err != nil {
		return err
	}
	return nil
}

// ValidateLatLon checks latitude ∈ [-90,90] and longitude ∈ [-180,180].
func ValidateLatLon(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}
	return nil
}
