package nist

import (
	"math"

	"gorand/domain/bitstream"
)

// excursionCycles walks the partial sums of the +-1 series and returns
// the number of zero crossings. The final unfinished cycle counts as a
// crossing when the walk does not end at zero.
func excursionCycles(bits bitstream.Stream) int {
	sum := 0
	cycles := 0
	for _, b := range bits {
		sum += 2*int(b) - 1
		if sum == 0 {
			cycles++
		}
	}
	if sum != 0 {
		cycles++
	}
	return cycles
}

func excursionConstraint(n int) float64 {
	c := 0.005 * math.Sqrt(float64(n))
	if c < 500 {
		return 500
	}
	return c
}

// RandomExcursionsTest examines how often the cumulative-sum random
// walk visits each state from -4 to +4 within its zero-to-zero cycles.
// One p-value per state, so a full run yields eight battery entries.
type RandomExcursionsTest struct{}

func NewRandomExcursionsTest() *RandomExcursionsTest { return &RandomExcursionsTest{} }

func (t *RandomExcursionsTest) Name() string { return "RandomExcursions" }
func (t *RandomExcursionsTest) Tier() int    { return 4 }
func (t *RandomExcursionsTest) MinBits() int { return 0 }

func (t *RandomExcursionsTest) Run(bits bitstream.Stream) []float64 {
	n := bits.Len()
	states := []int{-4, -3, -2, -1, 1, 2, 3, 4}

	// buckets[state][k] counts cycles in which the state was visited
	// exactly k times, with k capped at 5.
	buckets := make([][6]int, len(states))
	visits := make([]int, len(states))
	cycles := 0

	flush := func() {
		for st := range states {
			k := visits[st]
			if k > 5 {
				k = 5
			}
			buckets[st][k]++
			visits[st] = 0
		}
	}

	sum := 0
	for _, b := range bits {
		sum += 2*int(b) - 1
		if sum == 0 {
			cycles++
			flush()
			continue
		}
		if sum >= -4 && sum <= 4 {
			if sum < 0 {
				visits[sum+4]++
			} else {
				visits[sum+3]++
			}
		}
	}
	if sum != 0 {
		cycles++
		flush()
	}

	if float64(cycles) < excursionConstraint(n) {
		return nil
	}

	pvals := make([]float64, len(states))
	for st, x := range states {
		chi := 0.0
		for k := 0; k <= 5; k++ {
			expected := float64(cycles) * excursionStateProb(x, k)
			diff := float64(buckets[st][k]) - expected
			chi += diff * diff / expected
		}
		pvals[st] = clampP(igamc(2.5, chi/2.0))
	}
	return pvals
}

// excursionStateProb is the probability that a single cycle visits
// state x exactly k times, with k=5 covering five or more visits.
func excursionStateProb(x, k int) float64 {
	a := math.Abs(float64(x))
	base := 1.0 - 1.0/(2.0*a)
	switch {
	case k == 0:
		return base
	case k < 5:
		return 1.0 / (4.0 * a * a) * math.Pow(base, float64(k-1))
	default:
		return 1.0 / (2.0 * a) * math.Pow(base, 4)
	}
}

// RandomExcursionsVariantTest totals visits to each state from -9 to
// +9 across the whole walk and compares the totals against the cycle
// count. Eighteen p-values, one per state.
type RandomExcursionsVariantTest struct{}

func NewRandomExcursionsVariantTest() *RandomExcursionsVariantTest {
	return &RandomExcursionsVariantTest{}
}

func (t *RandomExcursionsVariantTest) Name() string { return "RandomExcursionsVariant" }
func (t *RandomExcursionsVariantTest) Tier() int    { return 4 }
func (t *RandomExcursionsVariantTest) MinBits() int { return 0 }

func (t *RandomExcursionsVariantTest) Run(bits bitstream.Stream) []float64 {
	n := bits.Len()

	var totals [19]int
	sum := 0
	cycles := 0
	for _, b := range bits {
		sum += 2*int(b) - 1
		if sum == 0 {
			cycles++
		} else if sum >= -9 && sum <= 9 {
			totals[sum+9]++
		}
	}
	if sum != 0 {
		cycles++
	}

	if float64(cycles) < excursionConstraint(n) {
		return nil
	}

	j := float64(cycles)
	pvals := make([]float64, 0, 18)
	for x := -9; x <= 9; x++ {
		if x == 0 {
			continue
		}
		xi := float64(totals[x+9])
		denom := math.Sqrt(2.0 * j * (4.0*math.Abs(float64(x)) - 2.0))
		pvals = append(pvals, clampP(math.Erfc(math.Abs(xi-j)/denom)))
	}
	return pvals
}
