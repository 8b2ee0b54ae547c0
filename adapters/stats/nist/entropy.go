package nist

import (
	"math"

	"gorand/domain/bitstream"
)

// ApproximateEntropyTest compares the frequencies of overlapping
// m-bit and (m+1)-bit patterns. A random stream shows maximal
// irregularity, so a small ApEn value flags repetitive structure.
type ApproximateEntropyTest struct{}

func NewApproximateEntropyTest() *ApproximateEntropyTest {
	return &ApproximateEntropyTest{}
}

func (t *ApproximateEntropyTest) Name() string { return "ApproximateEntropy" }
func (t *ApproximateEntropyTest) Tier() int    { return 3 }
func (t *ApproximateEntropyTest) MinBits() int { return 200 }

func (t *ApproximateEntropyTest) Run(bits bitstream.Stream) []float64 {
	n := bits.Len()
	m := 10
	if n/100 < m {
		m = n / 100
	}
	if m < 2 {
		return nil
	}

	apen := patternPhi(bits, m) - patternPhi(bits, m+1)
	chi := 2.0 * float64(n) * (math.Ln2 - apen)
	degrees := math.Pow(2, float64(m-1))

	return []float64{clampP(igamc(degrees, chi/2.0))}
}

// patternPhi computes the sum of c*ln(c) over the relative frequencies
// c of all overlapping blockLen-bit patterns, treating the stream as
// circular.
func patternPhi(bits bitstream.Stream, blockLen int) float64 {
	n := bits.Len()
	counts := overlappingPatternCounts(bits, blockLen)

	phi := 0.0
	for _, count := range counts {
		if count == 0 {
			continue
		}
		c := float64(count) / float64(n)
		phi += c * math.Log(c)
	}
	return phi
}

// overlappingPatternCounts tallies every length-blockLen window of the
// circularly extended stream using a rolling pattern index.
func overlappingPatternCounts(bits bitstream.Stream, blockLen int) []int {
	n := bits.Len()
	counts := make([]int, 1<<uint(blockLen))
	mask := len(counts) - 1

	idx := 0
	for j := 0; j < blockLen; j++ {
		idx = idx<<1 | int(bits[j%n])
	}
	counts[idx]++
	for i := 1; i < n; i++ {
		idx = (idx<<1)&mask | int(bits[(i+blockLen-1)%n])
		counts[idx]++
	}
	return counts
}
