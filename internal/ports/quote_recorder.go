package ports

import (
	"context"
	"delivery-rate-service/internal/domain"
)

// Sink for quote audit records (SQL log, event stream).
type QuoteRecorder interface {
	Record(ctx context.Context, rec domain.QuoteRecord) error
}

// Read side of the quote log.
type QuoteLog interface {
	QuoteRecorder
	// Return the most recent records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.QuoteRecord, error)
}
