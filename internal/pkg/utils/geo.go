package utils

import "math"

const earthRadiusMeters = 6371000

type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// CalculateHaversineDistance returns the great-circle distance between two
// coordinates in meters.
func CalculateHaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// PathDistance sums the leg distances of an ordered trail of coordinates.
func PathDistance(points []Coordinate) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		total += CalculateHaversineDistance(prev.Latitude, prev.Longitude, cur.Latitude, cur.Longitude)
	}
	return total
}
