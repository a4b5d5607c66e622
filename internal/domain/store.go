package domain

// Represents a store that can fulfil deliveries.
// Store catalogs are configuration data supplied per request; only enabled
// stores take part in nearest-store search.
type StoreLocation struct {
	Name     string
	Location GeoPoint
	Enabled  bool
}

// EnabledStores returns the enabled stores in catalog order.
func EnabledStores(stores []StoreLocation) []StoreLocation {
	out := make([]StoreLocation, 0, len(stores))
	for _, s := range stores {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}
