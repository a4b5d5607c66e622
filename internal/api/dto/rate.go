package dto

import "github.com/shopspring/decimal"

// DestinationRequest mirrors the host's package destination. Coordinates are
// required; address fields are only logged.
type DestinationRequest struct {
	Address1  string   `json:"address_1"`
	Address2  string   `json:"address_2"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Country   string   `json:"country"`
	Postcode  string   `json:"postcode"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type RateRequest struct {
	Destination DestinationRequest `json:"destination"`
}

type RateLineResponse struct {
	ID    string          `json:"id"`
	Label string          `json:"label"`
	Cost  decimal.Decimal `json:"cost"`
}

type NearestStoreResponse struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type RateResponse struct {
	Suppressed     bool                 `json:"suppressed"`
	NearestStore   NearestStoreResponse `json:"nearest_store"`
	DistanceMeters float64              `json:"distance_meters"`
	Rate           *RateLineResponse    `json:"rate"`
}
