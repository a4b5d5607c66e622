package distance

import (
	"delivery-rate-service/internal/domain"
	"fmt"
)

// MockPair fixes the distance between two points, in either direction.
type MockPair struct {
	From, To domain.GeoPoint
	Meters   float64
}

// MockDistanceCalculator returns preset distances and falls back to
// haversine for pairs it does not know.
type MockDistanceCalculator struct {
	m     map[string]float64
	calls int
}

func NewMockDistanceCalculator(pairs []MockPair) *MockDistanceCalculator {
	m := make(map[string]float64, 2*len(pairs))
	for _, p := range pairs {
		m[pairKey(p.From, p.To)] = p.Meters
		m[pairKey(p.To, p.From)] = p.Meters
	}
	return &MockDistanceCalculator{m: m}
}

func (c *MockDistanceCalculator) Meters(a, b domain.GeoPoint) float64 {
	c.calls++
	if d, ok := c.m[pairKey(a, b)]; ok {
		return d
	}
	return Haversine(a, b)
}

// Calls reports how many distances were requested.
func (c *MockDistanceCalculator) Calls() int { return c.calls }

func pairKey(a, b domain.GeoPoint) string {
	return fmt.Sprintf("%v,%v|%v,%v", a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}
