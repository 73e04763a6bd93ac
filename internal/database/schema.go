package database

import (
	"context"
	"fmt"
)

// schemaStatements create the registration tables. Every statement is guarded
// with IF NOT EXISTS so running them on each start never touches existing rows.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS business (
		id              BIGSERIAL PRIMARY KEY,
		submission_id   UUID NOT NULL UNIQUE,
		business_name   TEXT NOT NULL,
		business_mobile TEXT NOT NULL,
		business_type   TEXT NOT NULL,
		timings         TEXT NOT NULL,
		owner_name      TEXT NOT NULL,
		owner_mobile    TEXT NOT NULL,
		location        TEXT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		id               BIGSERIAL PRIMARY KEY,
		business_id      BIGINT NOT NULL REFERENCES business(id),
		item_name        TEXT NOT NULL,
		quantity         BIGINT NOT NULL CHECK (quantity >= 0),
		unit             TEXT NOT NULL,
		buying_price     NUMERIC NOT NULL CHECK (buying_price >= 0),
		selling_price    NUMERIC NOT NULL CHECK (selling_price >= 0),
		requirement_type TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS items_business_id_idx ON items (business_id)`,
}

// CreateSchema creates the business and items tables if they are absent.
func (q *Queries) CreateSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := q.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
