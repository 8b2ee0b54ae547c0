// Package memory provides an in-process history store used when no
// database is configured. Records live only as long as the process.
package memory

import (
	"context"
	"fmt"
	"sync"

	"gorand/domain/core"
	"gorand/domain/verdict"
	"gorand/ports"
)

// maxRecords bounds the store so long-running DB-less deployments do
// not grow without limit. The oldest records are dropped first.
const maxRecords = 1000

// HistoryStore implements HistoryPort with in-memory storage
type HistoryStore struct {
	mu      sync.RWMutex
	records []ports.QueryRecord
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

var _ ports.HistoryPort = (*HistoryStore)(nil)

func (s *HistoryStore) RecordQuery(ctx context.Context, rec ports.QueryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	if len(s.records) > maxRecords {
		s.records = append(s.records[:0:0], s.records[len(s.records)-maxRecords:]...)
	}
	return nil
}

func (s *HistoryStore) RecentQueries(ctx context.Context, limit int) ([]ports.QuerySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.records) {
		limit = len(s.records)
	}

	summaries := make([]ports.QuerySummary, 0, limit)
	for i := len(s.records) - 1; i >= 0 && len(summaries) < limit; i-- {
		rec := s.records[i]
		summaries = append(summaries, ports.QuerySummary{
			ID:           rec.ID,
			CreatedAt:    rec.CreatedAt,
			InputFormat:  rec.InputFormat,
			BitCount:     rec.BitCount,
			Valid:        rec.Valid,
			QualityScore: rec.QualityScore,
			Message:      rec.Message,
		})
	}
	return summaries, nil
}

func (s *HistoryStore) Query(ctx context.Context, id core.QueryID) (ports.QuerySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.records) - 1; i >= 0; i-- {
		rec := s.records[i]
		if rec.ID == id {
			return ports.QuerySummary{
				ID:           rec.ID,
				CreatedAt:    rec.CreatedAt,
				InputFormat:  rec.InputFormat,
				BitCount:     rec.BitCount,
				Valid:        rec.Valid,
				QualityScore: rec.QualityScore,
				Message:      rec.Message,
			}, nil
		}
	}
	return ports.QuerySummary{}, fmt.Errorf("%w: %s", ports.ErrQueryNotFound, id)
}

func (s *HistoryStore) QueryOutcomes(ctx context.Context, id core.QueryID) ([]verdict.TestOutcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].ID == id {
			outcomes := make([]verdict.TestOutcome, len(s.records[i].Outcomes))
			copy(outcomes, s.records[i].Outcomes)
			return outcomes, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ports.ErrQueryNotFound, id)
}
