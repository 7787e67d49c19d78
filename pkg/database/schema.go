package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		low_stock_threshold INTEGER NOT NULL DEFAULT 10,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (name, description)
	)`,
	`CREATE TABLE IF NOT EXISTS employee_requests (
		id UUID PRIMARY KEY,
		employee_id UUID NOT NULL REFERENCES users(id),
		item_id UUID NOT NULL REFERENCES items(id),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		reason TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		admin_response TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS supplier_orders (
		id UUID PRIMARY KEY,
		item_id UUID NOT NULL REFERENCES items(id),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		supplier_id UUID NOT NULL REFERENCES users(id),
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transaction_logs (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		action TEXT NOT NULL,
		details TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_employee_requests_employee ON employee_requests (employee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_supplier_orders_supplier ON supplier_orders (supplier_id)`,
	`CREATE INDEX IF NOT EXISTS idx_transaction_logs_created ON transaction_logs (created_at DESC)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
