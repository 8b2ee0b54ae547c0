package ports

import (
	"context"

	"gorand/domain/bitstream"
	"gorand/domain/verdict"
)

// BatteryPort runs a battery of statistical tests over a bit stream.
//
// Two implementations exist: the tiered battery for streams of at
// least 100 bits, and the small-sample battery for anything shorter.
// The tiered battery reports core.ErrInsufficientData below its floor,
// which callers treat as the signal to switch to the small-sample one.
type BatteryPort interface {
	Run(ctx context.Context, bits bitstream.Stream) (*verdict.BatteryResults, error)
}
