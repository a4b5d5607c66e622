package ports

import (
	"context"
	"delivery-rate-service/internal/domain"
)

// Port: a boundary for retrieving the store catalog from configuration.
type StoreCatalog interface {
	// Retrieve all stores in catalog order, enabled or not.
	ListStores(ctx context.Context) ([]domain.StoreLocation, error)
}
