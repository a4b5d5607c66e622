package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuoteRecordResponse struct {
	QuoteID        string              `json:"quote_id"`
	RequestedAt    time.Time           `json:"requested_at"`
	DestLat        float64             `json:"dest_lat"`
	DestLon        float64             `json:"dest_lon"`
	StoreName      string              `json:"store_name"`
	DistanceMeters float64             `json:"distance_meters"`
	Suppressed     bool                `json:"suppressed"`
	Cost           decimal.NullDecimal `json:"cost"`
}

type ListQuotesResponse struct {
	Quotes []QuoteRecordResponse `json:"quotes"`
}
