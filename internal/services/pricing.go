package services

import (
	"delivery-rate-service/internal/domain"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// TieredPricing maps the distance to the nearest store onto a quote.
//
// Destinations closer than ThresholdMeters are not offered the shipping
// option at all. Beyond that, the distance is rounded up to whole kilometers;
// every kilometer past IncludedKm costs RatePerKm, and at most MaxExtraKm
// kilometers are charged.
type TieredPricing struct {
	ThresholdMeters float64
	IncludedKm      int64
	MaxExtraKm      int64
	RatePerKm       decimal.Decimal
}

// DefaultPricing suppresses under 5 km and charges 15 per extra kilometer, capped at 5.
func DefaultPricing() TieredPricing {
	return TieredPricing{
		ThresholdMeters: 5000,
		IncludedKm:      5,
		MaxExtraKm:      5,
		RatePerKm:       decimal.NewFromInt(15),
	}
}

func (p TieredPricing) Validate() error {
	if math.IsNaN(p.ThresholdMeters) || p.ThresholdMeters < 0 {
		return fmt.Errorf("pricing: threshold meters must be >= 0, got %v", p.ThresholdMeters)
	}
	if p.IncludedKm < 0 {
		return fmt.Errorf("pricing: included km must be >= 0, got %d", p.IncludedKm)
	}
	if p.MaxExtraKm < 0 {
		return fmt.Errorf("pricing: max extra km must be >= 0, got %d", p.MaxExtraKm)
	}
	if p.RatePerKm.IsNegative() {
		return fmt.Errorf("pricing: rate per km must be >= 0, got %s", p.RatePerKm)
	}
	return nil
}

// Price returns the quote for a distance in meters.
func (p TieredPricing) Price(meters float64) domain.ShippingQuote {
	if math.IsNaN(meters) || meters < p.ThresholdMeters {
		return domain.Suppressed()
	}

	km := int64(math.Ceil(meters / 1000))
	extra := km - p.IncludedKm
	if extra < 0 {
		extra = 0
	}
	if extra > p.MaxExtraKm {
		extra = p.MaxExtraKm
	}

	q, err := domain.Cost(p.RatePerKm.Mul(decimal.NewFromInt(extra)))
	if err != nil {
		// Only reachable with a negative RatePerKm, which Validate rejects.
		return domain.Suppressed()
	}
	return q
}

func (p TieredPricing) signature() string {
	return fmt.Sprintf("%g-%d-%d-%s", p.ThresholdMeters, p.IncludedKm, p.MaxExtraKm, p.RatePerKm)
}
