package database

import (
	"context"
	"fmt"
)

// schemaStatements create the tables the API reads and writes. District
// rows themselves are seeded by an external data-entry process; the
// statements are idempotent so the server can run them on every boot.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS districts (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		state TEXT NOT NULL,
		district_code TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS mgnrega_data (
		id SERIAL PRIMARY KEY,
		district_id INTEGER NOT NULL REFERENCES districts(id),
		month INTEGER NOT NULL,
		year INTEGER NOT NULL,
		jobs_provided BIGINT NOT NULL DEFAULT 0,
		wages_paid_percentage DOUBLE PRECISION NOT NULL DEFAULT 0,
		pending_payments_crores DOUBLE PRECISION NOT NULL DEFAULT 0,
		person_days BIGINT NOT NULL DEFAULT 0,
		last_updated TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (district_id, month, year)
	)`,
	`CREATE TABLE IF NOT EXISTS issue_reports (
		id SERIAL PRIMARY KEY,
		district_id INTEGER NOT NULL REFERENCES districts(id),
		issue_type TEXT NOT NULL,
		description TEXT,
		voice_note_url TEXT,
		contact_number TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mgnrega_data_district_period
		ON mgnrega_data(district_id, year DESC, month DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_issue_reports_district_status
		ON issue_reports(district_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_districts_state
		ON districts(state)`,
}

// RunMigrations applies the schema statements in order.
func (db *Database) RunMigrations(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
