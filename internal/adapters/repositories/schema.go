package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for the quote log.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createQuoteLogQuery := `
	CREATE TABLE IF NOT EXISTS quote_log (
		quote_id UUID PRIMARY KEY,
		requested_at TIMESTAMPTZ NOT NULL,
		dest_lat DOUBLE PRECISION NOT NULL,
		dest_lon DOUBLE PRECISION NOT NULL,
		store_name TEXT NOT NULL,
		distance_meters DOUBLE PRECISION NOT NULL,
		suppressed BOOLEAN NOT NULL,
		cost NUMERIC(12, 2)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_quote_log_requested_at
	ON quote_log(requested_at DESC);
	`

	statements := []string{
		createQuoteLogQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
