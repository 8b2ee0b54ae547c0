package nist

import (
	"math"

	"gorand/domain/bitstream"
)

// LinearComplexityTest measures the length of the shortest LFSR that
// reproduces each block via Berlekamp-Massey. Random blocks sit near
// the theoretical mean M/2; short registers betray linear structure.
type LinearComplexityTest struct{}

func NewLinearComplexityTest() *LinearComplexityTest { return &LinearComplexityTest{} }

func (t *LinearComplexityTest) Name() string { return "LinearComplexity" }
func (t *LinearComplexityTest) Tier() int    { return 4 }
func (t *LinearComplexityTest) MinBits() int { return 10000 }

func (t *LinearComplexityTest) Run(bits bitstream.Stream) []float64 {
	n := bits.Len()
	blockLen := 500
	if n/100 < blockLen {
		blockLen = n / 100
	}
	if blockLen < 100 {
		return nil
	}
	blocks := n / blockLen

	m := float64(blockLen)
	sign := 1.0
	if blockLen%2 == 0 {
		sign = -1.0
	}
	mean := m/2.0 + (9.0+sign)/36.0 - (m/3.0+2.0/9.0)/math.Pow(2, m)

	blockSign := 1.0
	if blockLen%2 == 1 {
		blockSign = -1.0
	}

	pi := [7]float64{0.010417, 0.03125, 0.125, 0.5, 0.25, 0.0625, 0.020833}
	var counts [7]int
	for i := 0; i < blocks; i++ {
		l := berlekampMassey(bits[i*blockLen : (i+1)*blockLen])
		ti := blockSign*(float64(l)-mean) + 2.0/9.0
		counts[complexityBucket(ti)]++
	}

	chi := 0.0
	for i := 0; i < 7; i++ {
		expected := float64(blocks) * pi[i]
		diff := float64(counts[i]) - expected
		chi += diff * diff / expected
	}

	return []float64{clampP(igamc(3.0, chi/2.0))}
}

func complexityBucket(t float64) int {
	switch {
	case t <= -2.5:
		return 0
	case t <= -1.5:
		return 1
	case t <= -0.5:
		return 2
	case t <= 0.5:
		return 3
	case t <= 1.5:
		return 4
	case t <= 2.5:
		return 5
	default:
		return 6
	}
}

// berlekampMassey returns the linear complexity of the block, the
// length of the shortest LFSR generating it over GF(2).
func berlekampMassey(block bitstream.Stream) int {
	n := len(block)
	c := make([]uint8, n)
	b := make([]uint8, n)
	c[0], b[0] = 1, 1

	l, m := 0, -1
	for i := 0; i < n; i++ {
		d := block[i]
		for j := 1; j <= l; j++ {
			d ^= c[j] & block[i-j]
		}
		if d == 0 {
			continue
		}
		prev := append([]uint8(nil), c...)
		for j := 0; j+i-m < n; j++ {
			c[j+i-m] ^= b[j]
		}
		if l <= i/2 {
			l = i + 1 - l
			m = i
			b = prev
		}
	}
	return l
}
