package ports

import "delivery-rate-service/internal/domain"

// Capability registered with the host's shipping-method registry.
type RateProvider interface {
	// Return the quote for a destination given the store catalog.
	Quote(destination domain.GeoPoint, stores []domain.StoreLocation) (domain.ShippingQuote, error)
}
