package services

import (
	"delivery-rate-service/internal/domain"
	"delivery-rate-service/internal/ports"
	"errors"
	"fmt"
)

// RateEngine selects the nearest enabled store and prices the distance to it.
// It holds no per-request state and is safe for concurrent use as long as its
// DistanceCalculator is.
type RateEngine struct {
	calc    ports.DistanceCalculator
	pricing TieredPricing
}

func NewRateEngine(calc ports.DistanceCalculator, pricing TieredPricing) (*RateEngine, error) {
	if calc == nil {
		return nil, errors.New("rate engine: distance calculator must be non-nil")
	}
	if err := pricing.Validate(); err != nil {
		return nil, fmt.Errorf("rate engine: %w", err)
	}
	return &RateEngine{calc: calc, pricing: pricing}, nil
}

// Quote implements ports.RateProvider.
func (e *RateEngine) Quote(destination domain.GeoPoint, stores []domain.StoreLocation) (domain.ShippingQuote, error) {
	sel, err := e.Nearest(destination, stores)
	if err != nil {
		return domain.ShippingQuote{}, err
	}
	return sel.Quote, nil
}

// Nearest scans the enabled stores in catalog order and returns the closest
// one with its distance and quote.
//
// Only a strictly smaller distance replaces the current best, so the first
// store in catalog order wins ties.
func (e *RateEngine) Nearest(destination domain.GeoPoint, stores []domain.StoreLocation) (domain.Selection, error) {
	if err := destination.Validate(); err != nil {
		return domain.Selection{}, fmt.Errorf("nearest store: destination: %w", err)
	}

	var (
		best  domain.StoreLocation
		found bool
		minD  float64
	)

	for i, store := range stores {
		if !store.Enabled {
			continue
		}
		if err := store.Location.Validate(); err != nil {
			return domain.Selection{}, fmt.Errorf("nearest store: store #%d %q: %w", i+1, store.Name, err)
		}

		d := e.calc.Meters(store.Location, destination)
		if !found || d < minD {
			best = store
			minD = d
			found = true
		}
	}

	if len(stores) == 0 {
		return domain.Selection{}, fmt.Errorf("nearest store: %w", domain.ErrEmptyCatalog)
	}
	if !found {
		return domain.Selection{}, fmt.Errorf("nearest store: %d stores, none enabled: %w", len(stores), domain.ErrEmptyCatalog)
	}

	return domain.Selection{
		Store:          best,
		DistanceMeters: minD,
		Quote:          e.pricing.Price(minD),
	}, nil
}

var _ ports.RateProvider = (*RateEngine)(nil)
