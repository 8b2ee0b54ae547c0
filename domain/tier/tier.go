package tier

import (
	"gorand/domain/core"
)

// Descriptor describes one rung of the tiered test ladder. Larger
// samples unlock deeper tiers, which run more of the battery with
// better-conditioned statistics.
type Descriptor struct {
	Level           int    `json:"level"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	MinBits         int    `json:"min_bits"`
	RecommendedBits int    `json:"recommended_bits"`
}

var ladder = []Descriptor{
	{Level: 1, Name: "Minimal", Description: "Basic tests (Frequency, Runs, FFT)", MinBits: 100, RecommendedBits: 1_000},
	{Level: 2, Name: "Light", Description: "Basic + Block tests", MinBits: 1_000, RecommendedBits: 10_000},
	{Level: 3, Name: "Standard", Description: "Most NIST tests", MinBits: 10_000, RecommendedBits: 100_000},
	{Level: 4, Name: "Full", Description: "Complete NIST suite", MinBits: 100_000, RecommendedBits: 1_000_000},
	{Level: 5, Name: "Comprehensive", Description: "Full suite with optimal reliability", MinBits: 1_000_000, RecommendedBits: 10_000_000},
}

// MinimumBits is the floor below which no tier applies and callers
// should switch to the simplified battery.
const MinimumBits = 100

// Select maps a bit count to the deepest tier it satisfies. Below the
// tier-1 floor it returns ErrInsufficientData; the caller decides
// whether that is fatal or a signal to fall back.
func Select(bitCount int) (Descriptor, error) {
	for i := len(ladder) - 1; i >= 0; i-- {
		if bitCount >= ladder[i].MinBits {
			return ladder[i], nil
		}
	}
	return Descriptor{}, core.NewInsufficientDataError(bitCount, MinimumBits)
}

// Ladder returns the full tier table in ascending order.
func Ladder() []Descriptor {
	out := make([]Descriptor, len(ladder))
	copy(out, ladder)
	return out
}

// Next returns the tier above d, if any. Reports use it to tell the
// caller how much more data would unlock deeper coverage.
func Next(d Descriptor) (Descriptor, bool) {
	for i, entry := range ladder {
		if entry.Level == d.Level && i+1 < len(ladder) {
			return ladder[i+1], true
		}
	}
	return Descriptor{}, false
}
