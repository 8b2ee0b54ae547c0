package nist

import (
	"math"

	"gorand/domain/bitstream"
)

// RunsTest counts maximal same-bit runs. Too few runs means the stream
// sticks, too many means it oscillates; either way it is not random.
type RunsTest struct{}

func NewRunsTest() *RunsTest { return &RunsTest{} }

func (t *RunsTest) Name() string { return "Runs" }
func (t *RunsTest) Tier() int    { return 1 }
func (t *RunsTest) MinBits() int { return 0 }

func (t *RunsTest) Run(bits bitstream.Stream) []float64 {
	n := float64(bits.Len())
	if bits.Len() < 2 {
		return nil
	}

	pi := float64(bits.Ones()) / n

	// The runs statistic is only meaningful when the frequency test
	// would pass; a heavily biased stream fails outright.
	if math.Abs(pi-0.5) >= 2.0/math.Sqrt(n) {
		return []float64{0.0}
	}

	runs := 1.0
	for i := 1; i < bits.Len(); i++ {
		if bits[i] != bits[i-1] {
			runs++
		}
	}

	num := math.Abs(runs - 2.0*n*pi*(1.0-pi))
	den := 2.0 * math.Sqrt(2.0*n) * pi * (1.0 - pi)
	p := math.Erfc(num / den)
	return []float64{clampP(p)}
}

// LongestRunTest buckets the longest run of ones per block against the
// reference distribution for the block size regime.
type LongestRunTest struct{}

func NewLongestRunTest() *LongestRunTest { return &LongestRunTest{} }

func (t *LongestRunTest) Name() string { return "LongestRun" }
func (t *LongestRunTest) Tier() int    { return 3 }
func (t *LongestRunTest) MinBits() int { return 0 }

func (t *LongestRunTest) Run(bits bitstream.Stream) []float64 {
	n := bits.Len()
	if n < 128 {
		return nil
	}

	// Block size, bucket bounds and reference probabilities per the
	// three sample-size regimes of SP 800-22 section 2.4.
	var (
		blockSize int
		vMin      int
		pi        []float64
	)
	switch {
	case n < 6272:
		blockSize, vMin = 8, 1
		pi = []float64{0.2148, 0.3672, 0.2305, 0.1875}
	case n < 750000:
		blockSize, vMin = 128, 4
		pi = []float64{0.1174, 0.2430, 0.2493, 0.1752, 0.1027, 0.1124}
	default:
		blockSize, vMin = 10000, 10
		pi = []float64{0.0882, 0.2092, 0.2483, 0.1933, 0.1208, 0.0675, 0.0727}
	}

	k := len(pi) - 1
	numBlocks := n / blockSize
	counts := make([]float64, len(pi))

	for i := 0; i < numBlocks; i++ {
		block := bits[i*blockSize : (i+1)*blockSize]
		longest, current := 0, 0
		for _, b := range block {
			if b == 1 {
				current++
				if current > longest {
					longest = current
				}
			} else {
				current = 0
			}
		}

		bucket := longest - vMin
		if bucket < 0 {
			bucket = 0
		} else if bucket > k {
			bucket = k
		}
		counts[bucket]++
	}

	chiSq := 0.0
	for i, c := range counts {
		expected := float64(numBlocks) * pi[i]
		dev := c - expected
		chiSq += dev * dev / expected
	}

	p := igamc(float64(k)/2.0, chiSq/2.0)
	return []float64{clampP(p)}
}
