package domain

import "errors"

var (
	// ErrEmptyCatalog is returned when nearest-store search has no enabled store to consider.
	ErrEmptyCatalog = errors.New("store catalog is empty")

	// ErrInvalidCoordinate is returned for latitude/longitude values outside their ranges.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)
