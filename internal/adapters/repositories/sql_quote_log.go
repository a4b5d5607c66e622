package repositories

import (
	"context"
	"database/sql"
	"delivery-rate-service/internal/domain"
	"delivery-rate-service/internal/ports"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxRecentQuotes = 500

// Postgres-backed implementation of the QuoteLog port.
type SQLQuoteLog struct{ DB *sql.DB }

func NewSQLQuoteLog(db *sql.DB) *SQLQuoteLog {
	return &SQLQuoteLog{DB: db}
}

// Append a quote record to the log.
func (s *SQLQuoteLog) Record(ctx context.Context, rec domain.QuoteRecord) error {
	if s.DB == nil {
		return errors.New("sql quote log: DB is nil")
	}
	if rec.ID == uuid.Nil {
		return errors.New("record quote: quote id must be set")
	}

	query := `
	INSERT INTO quote_log (
		quote_id,
		requested_at,
		dest_lat,
		dest_lon,
		store_name,
		distance_meters,
		suppressed,
		cost
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := s.DB.ExecContext(ctx, query,
		rec.ID,
		rec.RequestedAt,
		rec.Destination.Latitude,
		rec.Destination.Longitude,
		rec.StoreName,
		rec.DistanceMeters,
		rec.Suppressed,
		rec.Cost,
	)
	if err != nil {
		return fmt.Errorf("record quote quote_id=%s: %w", rec.ID, err)
	}

	return nil
}

// Return the most recent quote records, newest first.
func (s *SQLQuoteLog) Recent(ctx context.Context, limit int) ([]domain.QuoteRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sql quote log: DB is nil")
	}
	if limit <= 0 || limit > maxRecentQuotes {
		return nil, fmt.Errorf("recent quotes: limit must be between 1 and %d, got %d", maxRecentQuotes, limit)
	}

	query := `
	SELECT
		quote_id,
		requested_at,
		dest_lat,
		dest_lon,
		store_name,
		distance_meters,
		suppressed,
		cost
	FROM quote_log
	ORDER BY requested_at DESC, quote_id
	LIMIT $1;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent quotes: query quote_log table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.QuoteRecord, 0, limit)
	for rows.Next() {
		var (
			rec  domain.QuoteRecord
			at   time.Time
			cost decimal.NullDecimal
		)
		if err := rows.Scan(
			&rec.ID,
			&at,
			&rec.Destination.Latitude,
			&rec.Destination.Longitude,
			&rec.StoreName,
			&rec.DistanceMeters,
			&rec.Suppressed,
			&cost,
		); err != nil {
			return nil, fmt.Errorf("recent quotes: scan row: %w", err)
		}
		rec.RequestedAt = at.UTC()
		rec.Cost = cost
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent quotes: row iteration: %w", err)
	}

	return out, nil
}

var _ ports.QuoteLog = (*SQLQuoteLog)(nil)
