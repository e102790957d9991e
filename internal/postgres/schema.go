package postgres

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS stores (
		id             BIGSERIAL PRIMARY KEY,
		store_id       INTEGER NOT NULL UNIQUE,
		store_location VARCHAR(100) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          BIGSERIAL PRIMARY KEY,
		name        VARCHAR(100) NOT NULL,
		description TEXT,
		price       NUMERIC(10,2) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id       BIGSERIAL PRIMARY KEY,
		username VARCHAR(100) NOT NULL UNIQUE,
		email    VARCHAR(254) UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id         BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL,
		status     VARCHAR(16) NOT NULL DEFAULT 'CREATED',
		total      NUMERIC(12,2) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate creates the catalog tables if they do not exist yet.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
