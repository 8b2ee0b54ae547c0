package nist

import (
	"math"

	"gorand/domain/bitstream"
)

// Maurer reference values per block length L, from SP 800-22 section 2.9.
var universalReference = map[int]struct {
	expected float64
	variance float64
}{
	5:  {4.5356602, 2.954},
	6:  {5.2177052, 3.125},
	7:  {6.1962507, 3.238},
	8:  {7.1836656, 3.311},
	9:  {8.1764248, 3.356},
	10: {9.1723243, 3.384},
	11: {10.170032, 3.401},
	12: {11.168765, 3.410},
	13: {12.168070, 3.416},
	14: {13.167693, 3.419},
	15: {14.167488, 3.421},
	16: {15.167379, 3.422},
}

// UniversalTest is Maurer's universal statistical test: the average
// distance in blocks between recurrences of each L-bit pattern tracks
// the stream's per-bit entropy, so a compressible stream scores low.
type UniversalTest struct{}

func NewUniversalTest() *UniversalTest { return &UniversalTest{} }

func (t *UniversalTest) Name() string { return "Universal" }
func (t *UniversalTest) Tier() int    { return 1 }
func (t *UniversalTest) MinBits() int { return 1000 }

func (t *UniversalTest) Run(bits bitstream.Stream) []float64 {
	n := bits.Len()

	l := 5
	for _, step := range []struct {
		threshold int
		length    int
	}{
		{1_059_061_760, 16},
		{496_435_200, 15},
		{231_669_760, 14},
		{107_560_960, 13},
		{49_643_520, 12},
		{22_753_280, 11},
		{10_342_400, 10},
		{4_654_080, 9},
		{2_068_480, 8},
		{904_960, 7},
		{387_840, 6},
	} {
		if n >= step.threshold {
			l = step.length
			break
		}
	}

	q := 10 * (1 << uint(l))
	k := n/l - q
	if k < 1 {
		return nil
	}

	ref := universalReference[l]

	// Last-seen block index per L-bit pattern, 1-based; zero means the
	// pattern has not occurred during initialization.
	table := make([]int, 1<<uint(l))
	pattern := func(block int) int {
		p := 0
		for _, b := range bits[(block-1)*l : block*l] {
			p = p<<1 | int(b)
		}
		return p
	}

	for i := 1; i <= q; i++ {
		table[pattern(i)] = i
	}

	sum := 0.0
	for i := q + 1; i <= q+k; i++ {
		p := pattern(i)
		sum += math.Log2(float64(i - table[p]))
		table[p] = i
	}
	fn := sum / float64(k)

	c := 0.7 - 0.8/float64(l) + (4.0+32.0/float64(l))*math.Pow(float64(k), -3.0/float64(l))/15.0
	sigma := c * math.Sqrt(ref.variance/float64(k))

	p := math.Erfc(math.Abs(fn-ref.expected) / (math.Sqrt2 * sigma))
	return []float64{clampP(p)}
}
