package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ShippingQuote is the outcome of a rate calculation: either the shipping
// option is suppressed, or it is offered at a non-negative cost.
// The zero value is a suppressed quote.
type ShippingQuote struct {
	offered bool
	amount  decimal.Decimal
}

// Suppressed returns a quote telling the host not to offer the shipping option.
func Suppressed() ShippingQuote {
	return ShippingQuote{}
}

// Cost returns an offered quote. Negative amounts are rejected.
func Cost(amount decimal.Decimal) (ShippingQuote, error) {
	if amount.IsNegative() {
		return ShippingQuote{}, fmt.Errorf("cost quote: amount %s must not be negative", amount)
	}
	return ShippingQuote{offered: true, amount: amount}, nil
}

func (q ShippingQuote) IsSuppressed() bool { return !q.offered }

// Amount returns the cost and true for offered quotes, or zero and false when suppressed.
func (q ShippingQuote) Amount() (decimal.Decimal, bool) {
	if !q.offered {
		return decimal.Zero, false
	}
	return q.amount, true
}

// Equal compares two quotes by outcome and amount.
func (q ShippingQuote) Equal(other ShippingQuote) bool {
	if q.offered != other.offered {
		return false
	}
	return !q.offered || q.amount.Equal(other.amount)
}

func (q ShippingQuote) String() string {
	if !q.offered {
		return "Suppressed"
	}
	return "Cost(" + q.amount.String() + ")"
}
