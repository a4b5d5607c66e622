package domain

import (
	"fmt"
	"math"
)

// Immutable geographic point in decimal degrees.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// NewGeoPoint validates the coordinate ranges and returns the point.
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	p := GeoPoint{Latitude: lat, Longitude: lon}
	if err := p.Validate(); err != nil {
		return GeoPoint{}, err
	}
	return p, nil
}

// Validate reports whether the point lies within [-90, 90] x [-180, 180].
// NaN and infinite values are rejected.
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Latitude) || p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidCoordinate, p.Latitude)
	}
	if math.IsNaN(p.Longitude) || p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidCoordinate, p.Longitude)
	}
	return nil
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%.7f,%.7f)", p.Latitude, p.Longitude)
}
