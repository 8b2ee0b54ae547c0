// Package quick provides the small-sample battery: six statistical
// heuristics that stay meaningful below the data floor of the tiered
// suite. The heuristics judge on raw statistics rather than p-values,
// so aggregation uses the plain pass rate.
package quick

import (
	"context"

	"go.uber.org/zap"

	"gorand/domain/bitstream"
	"gorand/domain/verdict"
	"gorand/ports"
)

// Battery runs the fixed heuristic set over a bitstream.
type Battery struct {
	logger *zap.SugaredLogger
}

func NewBattery(logger *zap.SugaredLogger) *Battery {
	return &Battery{logger: logger}
}

var _ ports.BatteryPort = (*Battery)(nil)

func (b *Battery) Run(ctx context.Context, bits bitstream.Stream) (*verdict.BatteryResults, error) {
	outcomes := []verdict.TestOutcome{
		frequencyTest(bits),
		runsTest(bits),
		longestRunTest(bits),
		pokerTest(bits),
		autocorrelationTest(bits),
		patternDistributionTest(bits),
	}

	passed, rate := verdict.PassRate(outcomes)
	b.logger.Infow("enhanced statistical analysis complete",
		"bits", bits.Len(),
		"passed", passed,
		"total", len(outcomes),
		"pass_rate", rate,
	)

	return &verdict.BatteryResults{
		BitCount:    bits.Len(),
		TestsPassed: passed,
		TotalTests:  len(outcomes),
		SuccessRate: rate,
		Tests:       outcomes,
		RawReport:   verdict.RenderQuick(bits.Len(), outcomes, passed, rate),
	}, nil
}
