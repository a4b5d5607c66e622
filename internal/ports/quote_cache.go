package ports

import (
	"context"
	"delivery-rate-service/internal/domain"
)

// Optional cache of computed selections keyed by catalog and destination.
type QuoteCache interface {
	// Return the cached selection and true on a hit.
	Get(ctx context.Context, key string) (domain.Selection, bool, error)
	Put(ctx context.Context, key string, sel domain.Selection) error
}
