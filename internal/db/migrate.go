// internal/db/migrate.go
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// schema is applied in order at startup. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id           BIGSERIAL PRIMARY KEY,
		first_name   TEXT NOT NULL,
		last_name    TEXT NOT NULL,
		phone_number TEXT NOT NULL UNIQUE,
		email        TEXT UNIQUE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS addresses (
		id           BIGSERIAL PRIMARY KEY,
		customer_id  BIGINT NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		address_line TEXT NOT NULL,
		city         TEXT NOT NULL,
		state        TEXT NOT NULL,
		pin_code     TEXT NOT NULL,
		is_primary   BOOLEAN NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_addresses_customer_id ON addresses (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_created_at ON customers (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_addresses_city ON addresses (LOWER(city))`,
}

// Migrate creates the customers and addresses tables if they are missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

// MigrateURL opens a short-lived lib/pq connection and applies the schema.
func MigrateURL(ctx context.Context, databaseURL string) error {
	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return fmt.Errorf("open schema connection: %w", err)
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		return fmt.Errorf("ping schema connection: %w", err)
	}
	return Migrate(ctx, conn)
}
