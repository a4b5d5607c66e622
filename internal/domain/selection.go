package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Selection is the nearest store chosen for a destination together with
// the distance to it and the resulting quote.
type Selection struct {
	Store          StoreLocation
	DistanceMeters float64
	Quote          ShippingQuote
}

// RateLine is what the host attaches to its shipping options when a quote is offered.
type RateLine struct {
	ID    string
	Label string
	Cost  decimal.Decimal
}

// QuoteRecord is the audit entry written for every computed quote.
type QuoteRecord struct {
	ID             uuid.UUID
	RequestedAt    time.Time
	Destination    GeoPoint
	StoreName      string
	DistanceMeters float64
	Suppressed     bool
	Cost           decimal.NullDecimal
}

// NewQuoteRecord builds an audit entry for a selection.
func NewQuoteRecord(destination GeoPoint, sel Selection, at time.Time) QuoteRecord {
	rec := QuoteRecord{
		ID:             uuid.New(),
		RequestedAt:    at.UTC(),
		Destination:    destination,
		StoreName:      sel.Store.Name,
		DistanceMeters: sel.DistanceMeters,
		Suppressed:     sel.Quote.IsSuppressed(),
	}
	if amount, ok := sel.Quote.Amount(); ok {
		rec.Cost = decimal.NullDecimal{Decimal: amount, Valid: true}
	}
	return rec
}
