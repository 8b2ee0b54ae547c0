package ports

import (
	"context"
	"errors"

	"gorand/domain/core"
	"gorand/domain/verdict"
)

// ErrQueryNotFound reports a lookup for a query ID with no history record.
var ErrQueryNotFound = errors.New("query not found")

// QueryRecord is one completed validation query as persisted to history.
type QueryRecord struct {
	ID           core.QueryID
	CreatedAt    core.Timestamp
	InputFormat  string
	InputDigest  core.InputDigest
	BitCount     int
	Valid        bool
	QualityScore float64
	Message      string
	Outcomes     []verdict.TestOutcome
}

// QuerySummary is the list-view projection of a historical query.
type QuerySummary struct {
	ID           core.QueryID   `json:"id"`
	CreatedAt    core.Timestamp `json:"created_at"`
	InputFormat  string         `json:"input_format"`
	BitCount     int            `json:"bit_count"`
	Valid        bool           `json:"valid"`
	QualityScore float64        `json:"quality_score"`
	Message      string         `json:"message"`
}

// HistoryPort records completed queries and serves them back for the
// history views. Implementations must tolerate concurrent writers.
// Lookups by ID return ErrQueryNotFound when no record exists.
type HistoryPort interface {
	RecordQuery(ctx context.Context, rec QueryRecord) error
	RecentQueries(ctx context.Context, limit int) ([]QuerySummary, error)
	Query(ctx context.Context, id core.QueryID) (QuerySummary, error)
	QueryOutcomes(ctx context.Context, id core.QueryID) ([]verdict.TestOutcome, error)
}
