package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS submissions (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT,
		message TEXT NOT NULL,
		user_agent TEXT,
		ip_address TEXT,
		read INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_read ON submissions(read)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS submissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT,
		message TEXT NOT NULL,
		user_agent TEXT,
		ip_address TEXT,
		read INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_read ON submissions(read)`,
}

const dropSchema = `DROP TABLE IF EXISTS submissions`

func schemaFor(db *sqlx.DB) []string {
	if db.DriverName() == DriverSQLite {
		return sqliteSchema
	}
	return postgresSchema
}

// EnsureSchema creates the submissions table and its indexes when missing.
// Running it again is a no-op. The first failing statement stops the run.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaFor(db) {
		if err := exec(ctx, db, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// ResetSchema drops the submissions table and recreates it empty.
func ResetSchema(ctx context.Context, db *sqlx.DB) error {
	if err := exec(ctx, db, dropSchema); err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return EnsureSchema(ctx, db)
}
