package catalog

import (
	"context"
	"delivery-rate-service/internal/domain"
)

// StaticCatalog serves a fixed store list.
type StaticCatalog struct {
	stores []domain.StoreLocation
}

func NewStaticCatalog(stores []domain.StoreLocation) *StaticCatalog {
	return &StaticCatalog{stores: append([]domain.StoreLocation(nil), stores...)}
}

// Return a copy so callers cannot mutate the configured catalog.
func (c *StaticCatalog) ListStores(ctx context.Context) ([]domain.StoreLocation, error) {
	return append([]domain.StoreLocation(nil), c.stores...), nil
}
