package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"gorand/domain/core"
	"gorand/domain/verdict"
	"gorand/ports"
)

// HistoryRepositoryImpl implements HistoryPort for PostgreSQL
type HistoryRepositoryImpl struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new PostgreSQL history repository
func NewHistoryRepository(db *sqlx.DB) ports.HistoryPort {
	return &HistoryRepositoryImpl{db: db}
}

type querySummaryRow struct {
	QueryID      string    `db:"query_id"`
	CreatedAt    time.Time `db:"created_at"`
	InputFormat  string    `db:"input_format"`
	BitCount     int       `db:"bit_count"`
	Valid        bool      `db:"valid"`
	QualityScore float64   `db:"quality_score"`
	Message      string    `db:"message"`
}

type testResultRow struct {
	TestName    string  `db:"test_name"`
	Passed      bool    `db:"passed"`
	PValue      float64 `db:"p_value"`
	Statistic   float64 `db:"statistic"`
	Description string  `db:"description"`
}

// RecordQuery stores a completed query and its per-test outcomes in a
// single transaction, so the detail view never sees a query without
// its results.
func (r *HistoryRepositoryImpl) RecordQuery(ctx context.Context, rec ports.QueryRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO queries (query_id, created_at, input_format, input_digest, bit_count, valid, quality_score, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rec.ID.String(), rec.CreatedAt.Time(), rec.InputFormat, rec.InputDigest.String(),
		rec.BitCount, rec.Valid, rec.QualityScore, rec.Message)
	if err != nil {
		return err
	}

	for _, o := range rec.Outcomes {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO test_results (query_id, test_name, passed, p_value, statistic, description)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, rec.ID.String(), o.Name, o.Passed, o.PValue, o.Statistic, o.Description)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentQueries returns the latest queries, newest first
func (r *HistoryRepositoryImpl) RecentQueries(ctx context.Context, limit int) ([]ports.QuerySummary, error) {
	var rows []querySummaryRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT query_id, created_at, input_format, bit_count, valid, quality_score, message
		FROM queries
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.QuerySummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, ports.QuerySummary{
			ID:           core.QueryID(row.QueryID),
			CreatedAt:    core.NewTimestamp(row.CreatedAt),
			InputFormat:  row.InputFormat,
			BitCount:     row.BitCount,
			Valid:        row.Valid,
			QualityScore: row.QualityScore,
			Message:      row.Message,
		})
	}
	return summaries, nil
}

// Query returns the summary row for one query
func (r *HistoryRepositoryImpl) Query(ctx context.Context, id core.QueryID) (ports.QuerySummary, error) {
	var row querySummaryRow
	err := r.db.GetContext(ctx, &row, `
		SELECT query_id, created_at, input_format, bit_count, valid, quality_score, message
		FROM queries
		WHERE query_id = $1
	`, id.String())
	if err == sql.ErrNoRows {
		return ports.QuerySummary{}, fmt.Errorf("%w: %s", ports.ErrQueryNotFound, id)
	}
	if err != nil {
		return ports.QuerySummary{}, err
	}

	return ports.QuerySummary{
		ID:           core.QueryID(row.QueryID),
		CreatedAt:    core.NewTimestamp(row.CreatedAt),
		InputFormat:  row.InputFormat,
		BitCount:     row.BitCount,
		Valid:        row.Valid,
		QualityScore: row.QualityScore,
		Message:      row.Message,
	}, nil
}

// QueryOutcomes returns the per-test outcomes for one query in the
// order they were stored. Queries rejected before testing have a
// summary row but no outcomes, so an empty result re-checks the
// queries table before reporting not found.
func (r *HistoryRepositoryImpl) QueryOutcomes(ctx context.Context, id core.QueryID) ([]verdict.TestOutcome, error) {
	var rows []testResultRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT test_name, passed, p_value, statistic, description
		FROM test_results
		WHERE query_id = $1
		ORDER BY id
	`, id.String())
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		var exists bool
		err := r.db.GetContext(ctx, &exists, `
			SELECT EXISTS (SELECT 1 FROM queries WHERE query_id = $1)
		`, id.String())
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", ports.ErrQueryNotFound, id)
		}
		return []verdict.TestOutcome{}, nil
	}

	outcomes := make([]verdict.TestOutcome, 0, len(rows))
	for _, row := range rows {
		outcomes = append(outcomes, verdict.TestOutcome{
			Name:        row.TestName,
			Passed:      row.Passed,
			PValue:      row.PValue,
			Statistic:   row.Statistic,
			Description: row.Description,
		})
	}
	return outcomes, nil
}
