package ports

import "delivery-rate-service/internal/domain"

// Contract for computing straight-line distance between two points.
type DistanceCalculator interface {
	// Return the distance between a and b in meters.
	Meters(a, b domain.GeoPoint) float64
}
