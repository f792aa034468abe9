// Package geo holds great-circle helpers shared by the stores.
package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by MongoDB's spherical
// $geoNear, so in-memory and Mongo distances agree.
const EarthRadiusMeters = 6378100.0

// Distance returns the haversine distance in meters between two points.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180.0
	lon1Rad := lon1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0
	lon2Rad := lon2 * math.Pi / 180.0

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// BoundingBox returns the [minLat, minLon, maxLat, maxLon] box enclosing a
// circle of radiusMeters around (lat, lon). ok is false when the box would
// cross a pole or the antimeridian; callers should fall back to a scan.
func BoundingBox(lat, lon, radiusMeters float64) (minLat, minLon, maxLat, maxLon float64, ok bool) {
	dLat := (radiusMeters / EarthRadiusMeters) * (180 / math.Pi)
	minLat, maxLat = lat-dLat, lat+dLat
	if minLat < -90 || maxLat > 90 {
		return 0, 0, 0, 0, false
	}

	// Widen longitude by the latitude nearest a pole inside the box.
	widest := math.Max(math.Abs(minLat), math.Abs(maxLat))
	cos := math.Cos(widest * math.Pi / 180)
	if cos <= 0 {
		return 0, 0, 0, 0, false
	}
	dLon := dLat / cos
	minLon, maxLon = lon-dLon, lon+dLon
	if minLon < -180 || maxLon > 180 {
		return 0, 0, 0, 0, false
	}
	return minLat, minLon, maxLat, maxLon, true
}
