package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gorand/domain/core"
	"gorand/domain/verdict"
	"gorand/ports"
)

// defaultHistoryLimit caps the history listing when the caller does
// not ask for a specific page size.
const defaultHistoryLimit = 50

// HistoryService serves past validation queries for the history views.
type HistoryService struct {
	history ports.HistoryPort
	logger  *zap.SugaredLogger
}

// NewHistoryService creates a history service.
func NewHistoryService(history ports.HistoryPort, logger *zap.SugaredLogger) *HistoryService {
	return &HistoryService{history: history, logger: logger}
}

// RecentQueries lists the most recent queries, newest first.
func (s *HistoryService) RecentQueries(ctx context.Context, limit int) ([]ports.QuerySummary, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	summaries, err := s.history.RecentQueries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent queries: %w", err)
	}
	return summaries, nil
}

// Query returns the summary row for one past query.
func (s *HistoryService) Query(ctx context.Context, id string) (ports.QuerySummary, error) {
	queryID, err := core.ParseQueryID(id)
	if err != nil {
		return ports.QuerySummary{}, err
	}
	summary, err := s.history.Query(ctx, queryID)
	if err != nil {
		return ports.QuerySummary{}, fmt.Errorf("failed to load query: %w", err)
	}
	return summary, nil
}

// QueryOutcomes returns the per-test outcomes recorded for one query.
func (s *HistoryService) QueryOutcomes(ctx context.Context, id string) ([]verdict.TestOutcome, error) {
	queryID, err := core.ParseQueryID(id)
	if err != nil {
		return nil, err
	}
	outcomes, err := s.history.QueryOutcomes(ctx, queryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load query outcomes: %w", err)
	}
	return outcomes, nil
}
