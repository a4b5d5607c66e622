package catalog

import (
	"delivery-rate-service/internal/domain"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// storeRecord is the on-disk and on-wire shape of a catalog entry.
type storeRecord struct {
	Name      string     `json:"name" yaml:"name"`
	Latitude  coordinate `json:"latitude" yaml:"latitude"`
	Longitude coordinate `json:"longitude" yaml:"longitude"`
	Status    string     `json:"status" yaml:"status"`
}

// coordinate accepts both bare numbers and quoted numbers ("77.5816819").
type coordinate float64

func (c *coordinate) UnmarshalJSON(b []byte) error {
	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}
	return c.parse(raw)
}

func (c *coordinate) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	return c.parse(raw)
}

func (c *coordinate) parse(raw string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("coordinate %q is not a number", raw)
	}
	*c = coordinate(f)
	return nil
}

type catalogDocument struct {
	Stores []storeRecord `json:"stores" yaml:"stores"`
}

// toStores validates records and converts them to domain stores in order.
// A missing status means the store is enabled.
func (d catalogDocument) toStores() ([]domain.StoreLocation, error) {
	out := make([]domain.StoreLocation, 0, len(d.Stores))
	for i, r := range d.Stores {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("store at index %d: name cannot be empty", i+1)
		}

		loc, err := domain.NewGeoPoint(float64(r.Latitude), float64(r.Longitude))
		if err != nil {
			return nil, fmt.Errorf("store at index %d (%q): %w", i+1, name, err)
		}

		var enabled bool
		switch strings.ToLower(strings.TrimSpace(r.Status)) {
		case "", "enabled":
			enabled = true
		case "disabled":
			enabled = false
		default:
			return nil, fmt.Errorf("store at index %d (%q): unknown status %q", i+1, name, r.Status)
		}

		out = append(out, domain.StoreLocation{Name: name, Location: loc, Enabled: enabled})
	}
	return out, nil
}
