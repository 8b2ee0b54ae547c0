package migration

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createQueriesTable(ctx, db); err != nil {
		return fmt.Errorf("failed to create queries table: %w", err)
	}

	if err := r.createTestResultsTable(ctx, db); err != nil {
		return fmt.Errorf("failed to create test_results table: %w", err)
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func (r *MigrationRunner) createQueriesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS queries (
			query_id UUID PRIMARY KEY,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			input_format VARCHAR(16) NOT NULL,
			input_digest VARCHAR(64) NOT NULL,
			bit_count INTEGER NOT NULL,
			valid BOOLEAN NOT NULL,
			quality_score DOUBLE PRECISION NOT NULL,
			message TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

func (r *MigrationRunner) createTestResultsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS test_results (
			id BIGSERIAL PRIMARY KEY,
			query_id UUID NOT NULL REFERENCES queries(query_id) ON DELETE CASCADE,
			test_name VARCHAR(64) NOT NULL,
			passed BOOLEAN NOT NULL,
			p_value DOUBLE PRECISION NOT NULL,
			statistic DOUBLE PRECISION NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_queries_created_at ON queries(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_queries_valid ON queries(valid)",
		"CREATE INDEX IF NOT EXISTS idx_test_results_query_id ON test_results(query_id)",
	}

	for _, idxSQL := range indexes {
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			return err
		}
	}

	return nil
}
