package quick

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/montanaflynn/stats"

	"gorand/domain/bitstream"
	"gorand/domain/verdict"
)

// frequencyTest checks that ones and zeros are roughly balanced. The
// normalized imbalance |ones-zeros|/sqrt(n) behaves like a standard
// normal for random data, so values past 2 are suspect.
func frequencyTest(bits bitstream.Stream) verdict.TestOutcome {
	n := float64(bits.Len())
	ones := float64(bits.Ones())
	zeros := n - ones

	statistic := math.Abs(ones-zeros) / math.Sqrt(n)

	return verdict.TestOutcome{
		Name:      "Frequency Test",
		Passed:    statistic < 2.0,
		Statistic: statistic,
		Description: fmt.Sprintf("Ones: %.0f, Zeros: %.0f, Ratio: %.3f (expect ~0.500)",
			ones, zeros, ones/n),
	}
}

// runsTest compares the observed run count with the Wald-Wolfowitz
// expectation for a sequence with the same ones proportion.
func runsTest(bits bitstream.Stream) verdict.TestOutcome {
	if bits.Len() < 2 {
		return verdict.TestOutcome{
			Name:        "Runs Test",
			Description: "Insufficient data",
		}
	}

	n := float64(bits.Len())
	prop := float64(bits.Ones()) / n

	runs := 1
	for i := 1; i < bits.Len(); i++ {
		if bits[i] != bits[i-1] {
			runs++
		}
	}

	expected := 2.0*n*prop*(1.0-prop) + 1.0
	variance := (expected - 1.0) * (expected - 2.0) / (n - 1.0)
	stdDev := math.Sqrt(variance)

	statistic := 0.0
	if stdDev > 0 {
		statistic = math.Abs(float64(runs)-expected) / stdDev
	}

	return verdict.TestOutcome{
		Name:      "Runs Test",
		Passed:    statistic < 2.0,
		Statistic: statistic,
		Description: fmt.Sprintf("Observed runs: %d, Expected: %.1f, Statistic: %.3f",
			runs, expected, statistic),
	}
}

// longestRunTest flags runs of identical bits well past the expected
// 1.5*log2(n) length for random data.
func longestRunTest(bits bitstream.Stream) verdict.TestOutcome {
	if bits.Len() == 0 {
		return verdict.TestOutcome{
			Name:        "Longest Run Test",
			Description: "No data",
		}
	}

	longest := maxConsecutiveSame(bits)
	expected := int(math.Ceil(math.Log2(float64(bits.Len())) * 1.5))

	passed := longest <= expected*2
	qualifier := "within normal range"
	if !passed {
		qualifier = "suspiciously long"
	}

	return verdict.TestOutcome{
		Name:      "Longest Run Test",
		Passed:    passed,
		Statistic: float64(longest),
		Description: fmt.Sprintf("Longest run: %d, Expected: ~%d, %s",
			longest, expected, qualifier),
	}
}

// pokerTest partitions the stream into 4-bit blocks and chi-squares the
// observed pattern counts against the uniform expectation. Only
// patterns that actually occur contribute to the statistic.
func pokerTest(bits bitstream.Stream) verdict.TestOutcome {
	if bits.Len() < 4 {
		return verdict.TestOutcome{
			Name:        "Poker Test",
			Description: "Insufficient data (need at least 4 bits)",
		}
	}

	const blockSize = 4
	blocks := bits.Len() / blockSize

	var counts [16]int
	seen := 0
	for i := 0; i < blocks; i++ {
		pattern := 0
		for j := 0; j < blockSize; j++ {
			pattern = pattern<<1 | int(bits[i*blockSize+j])
		}
		if counts[pattern] == 0 {
			seen++
		}
		counts[pattern]++
	}

	expected := float64(blocks) / 16.0
	chi := 0.0
	for _, count := range counts {
		if count == 0 {
			continue
		}
		diff := float64(count) - expected
		chi += diff * diff / expected
	}

	return verdict.TestOutcome{
		Name:      "Poker Test (Pattern Distribution)",
		Passed:    chi < 25.0 && blocks >= 4,
		Statistic: chi,
		Description: fmt.Sprintf("Patterns found: %d/16, Chi-square: %.2f, %d blocks analyzed",
			seen, chi, blocks),
	}
}

// autocorrelationTest measures how often bits agree with their lag-1
// and lag-2 neighbors; random data should match about half the time.
func autocorrelationTest(bits bitstream.Stream) verdict.TestOutcome {
	if bits.Len() < 10 {
		return verdict.TestOutcome{
			Name:        "Autocorrelation Test",
			Description: "Insufficient data (need at least 10 bits)",
		}
	}

	n := bits.Len()
	maxLag := n / 4
	if maxLag > 2 {
		maxLag = 2
	}

	deviations := make(stats.Float64Data, 0, maxLag)
	for lag := 1; lag <= maxLag; lag++ {
		matches := 0
		for i := 0; i < n-lag; i++ {
			if bits[i] == bits[i+lag] {
				matches++
			}
		}
		correlation := float64(matches) / float64(n-lag)
		deviations = append(deviations, math.Abs(correlation-0.5))
	}

	statistic, err := stats.Max(deviations)
	if err != nil {
		statistic = 0
	}

	return verdict.TestOutcome{
		Name:      "Autocorrelation Test",
		Passed:    statistic < 0.15,
		Statistic: statistic,
		Description: fmt.Sprintf("Max autocorrelation deviation: %.3f (expect < 0.15 for randomness)",
			statistic),
	}
}

// patternDistributionTest scans for the obvious hand-crafted failure
// modes: a dominating identical-bit run, a near-pure alternating
// sequence, and adjacent repeated 8-bit blocks.
func patternDistributionTest(bits bitstream.Stream) verdict.TestOutcome {
	if bits.Len() < 8 {
		return verdict.TestOutcome{
			Name:        "Pattern Distribution Test",
			Description: "Insufficient data",
		}
	}

	n := bits.Len()
	var issues []string

	maxSame := maxConsecutiveSame(bits)
	threshold := n / 4
	if threshold < 8 {
		threshold = 8
	}
	if maxSame > threshold {
		issues = append(issues, fmt.Sprintf("%d consecutive identical bits", maxSame))
	}

	transitions := 0
	for i := 1; i < n; i++ {
		if bits[i] != bits[i-1] {
			transitions++
		}
	}
	alternatingRatio := float64(transitions) / float64(n)
	if alternatingRatio > 0.9 {
		issues = append(issues, fmt.Sprintf("%.0f%% alternating pattern", alternatingRatio*100.0))
	}

	if hasRepeatingBlocks(bits) {
		issues = append(issues, "Repeating block pattern detected")
	}

	passed := len(issues) == 0
	description := "No obvious non-random patterns detected"
	if !passed {
		description = "Issues found: " + strings.Join(issues, "; ")
	}

	return verdict.TestOutcome{
		Name:        "Pattern Distribution Test",
		Passed:      passed,
		Statistic:   float64(len(issues)),
		Description: description,
	}
}

func maxConsecutiveSame(bits bitstream.Stream) int {
	if bits.Len() == 0 {
		return 0
	}
	longest, current := 1, 1
	for i := 1; i < bits.Len(); i++ {
		if bits[i] == bits[i-1] {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 1
		}
	}
	return longest
}

func hasRepeatingBlocks(bits bitstream.Stream) bool {
	const blockSize = 8
	if bits.Len() < 2*blockSize {
		return false
	}
	for i := 0; i < bits.Len()-2*blockSize; i++ {
		if bytes.Equal(bits[i:i+blockSize], bits[i+blockSize:i+2*blockSize]) {
			return true
		}
	}
	return false
}
