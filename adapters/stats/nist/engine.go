// Package nist implements the tiered statistical test suite from NIST
// SP 800-22. Each test consumes a bitstream and yields one p-value per
// sub-result; the engine gates tests by tier and per-test data
// requirements and fans the eligible ones out across a bounded worker
// pool.
package nist

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"gorand/domain/bitstream"
	"gorand/domain/tier"
	"gorand/domain/verdict"
	"gorand/ports"
)

// Test is a single statistical test over a bitstream. Run returns one
// p-value per sub-result, or an empty slice when the stream fails the
// test's own preconditions; such a test is omitted from the battery
// rather than counted as a failure.
type Test interface {
	Name() string
	Tier() int
	MinBits() int
	Run(bits bitstream.Stream) []float64
}

// AllTests returns the full suite. Order does not matter for output;
// outcomes are sorted by name before scoring.
func AllTests() []Test {
	return []Test{
		NewFrequencyTest(),
		NewRunsTest(),
		NewSpectralTest(),
		NewUniversalTest(),
		NewCumulativeSumsForward(),
		NewCumulativeSumsReverse(),
		NewBlockFrequencyTest(),
		NewNonOverlappingTemplateTest(),
		NewOverlappingTemplateTest(),
		NewLongestRunTest(),
		NewRankTest(),
		NewApproximateEntropyTest(),
		NewSerialFirst(),
		NewSerialSecond(),
		NewRandomExcursionsTest(),
		NewRandomExcursionsVariantTest(),
		NewLinearComplexityTest(),
	}
}

// Engine selects a tier for the stream, runs every eligible test, and
// folds the outcomes into a scored battery result.
type Engine struct {
	tests  []Test
	logger *zap.SugaredLogger
	sem    *semaphore.Weighted
}

func NewEngine(logger *zap.SugaredLogger) *Engine {
	return &Engine{
		tests:  AllTests(),
		logger: logger,
		sem:    semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

var _ ports.BatteryPort = (*Engine)(nil)

func (e *Engine) Run(ctx context.Context, bits bitstream.Stream) (*verdict.BatteryResults, error) {
	descriptor, err := tier.Select(bits.Len())
	if err != nil {
		return nil, err
	}

	e.logger.Infow("running tiered battery",
		"bits", bits.Len(),
		"tier", descriptor.Level,
		"tier_name", descriptor.Name,
	)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		outcomes []verdict.TestOutcome
	)

	for _, t := range e.tests {
		if t.Tier() > descriptor.Level {
			continue
		}
		if min := t.MinBits(); min > 0 && bits.Len() < min {
			continue
		}

		wg.Add(1)
		go func(t Test) {
			defer wg.Done()
			if err := e.sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer e.sem.Release(1)

			pvals := t.Run(bits)
			if len(pvals) == 0 {
				e.logger.Debugw("test omitted, preconditions unmet", "test", t.Name())
				return
			}

			results := make([]verdict.TestOutcome, 0, len(pvals))
			for i, p := range pvals {
				name := t.Name()
				if len(pvals) > 1 {
					name = fmt.Sprintf("%s-%d", name, i+1)
				}
				results = append(results, verdict.TestOutcome{
					Name:        name,
					Passed:      p >= verdict.Alpha,
					PValue:      p,
					Description: fmt.Sprintf("P-value: %.4f", p),
				})
			}

			mu.Lock()
			outcomes = append(outcomes, results...)
			mu.Unlock()
		}(t)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	verdict.SortByName(outcomes)
	summary := verdict.Score(outcomes)

	e.logger.Infow("tiered battery complete",
		"tier", descriptor.Level,
		"passed", summary.Passed,
		"total", summary.Total,
		"quality_score", summary.SuccessRate,
		"avg_p_value", summary.AvgPValue,
	)

	return &verdict.BatteryResults{
		BitCount:    bits.Len(),
		TestsPassed: summary.Passed,
		TotalTests:  summary.Total,
		SuccessRate: summary.SuccessRate,
		Tests:       outcomes,
		RawReport:   verdict.RenderTiered(bits.Len(), descriptor, outcomes, summary),
	}, nil
}
