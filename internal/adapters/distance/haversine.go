package distance

import (
	"delivery-rate-service/internal/domain"
	"math"
)

// EarthRadiusMeters is the mean Earth radius used for great-circle distances.
const EarthRadiusMeters = 6371000.0

// HaversineCalculator implements DistanceCalculator with the haversine formula
// on a sphere of radius EarthRadiusMeters.
//
// It is stateless and safe for concurrent use.
type HaversineCalculator struct{}

func NewHaversineCalculator() HaversineCalculator {
	return HaversineCalculator{}
}

func (HaversineCalculator) Meters(a, b domain.GeoPoint) float64 {
	return Haversine(a, b)
}

// Haversine returns the great-circle distance between a and b in meters.
func Haversine(a, b domain.GeoPoint) float64 {
	dLat := degToRad(b.Latitude - a.Latitude)
	dLon := degToRad(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(degToRad(a.Latitude))*math.Cos(degToRad(b.Latitude))*sinLon*sinLon

	// Rounding can push h marginally outside [0, 1]; the square roots need it inside.
	h = math.Min(math.Max(h, 0), 1)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMeters * c
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
