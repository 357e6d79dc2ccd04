// Package geo provides coordinate math for laying venues out on the compass.
package geo

import "math"

const earthRadiusMeters = 6371000

// Haversine calculates the distance in meters between two lat/lng points
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// MetersToMiles converts meters to miles
func MetersToMiles(meters float64) float64 {
	return meters / 1609.344
}

// Offset projects the displacement from a center point to a venue onto a flat
// x/y plane in meters, x pointing east and y pointing north. At NYC latitudes
// the equirectangular approximation is accurate well past compass scale.
func Offset(centerLat, centerLng, lat, lng float64) (x, y float64) {
	latRad := centerLat * math.Pi / 180
	x = (lng - centerLng) * math.Pi / 180 * earthRadiusMeters * math.Cos(latRad)
	y = (lat - centerLat) * math.Pi / 180 * earthRadiusMeters
	return x, y
}
