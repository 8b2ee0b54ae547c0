package nist

import (
	"math"

	"gorand/domain/bitstream"
)

// CumulativeSumsTest treats the stream as a ±1 random walk and checks
// that the maximal excursion from zero stays within what an unbiased
// walk allows. Forward and reverse traversals run as separate tests.
type CumulativeSumsTest struct {
	reverse bool
}

func NewCumulativeSumsForward() *CumulativeSumsTest { return &CumulativeSumsTest{} }
func NewCumulativeSumsReverse() *CumulativeSumsTest { return &CumulativeSumsTest{reverse: true} }

func (t *CumulativeSumsTest) Name() string {
	if t.reverse {
		return "CumulativeSums-Reverse"
	}
	return "CumulativeSums-Forward"
}
func (t *CumulativeSumsTest) Tier() int    { return 1 }
func (t *CumulativeSumsTest) MinBits() int { return 0 }

func (t *CumulativeSumsTest) Run(bits bitstream.Stream) []float64 {
	n := bits.Len()
	if n == 0 {
		return nil
	}

	sum, z := 0, 0
	for i := 0; i < n; i++ {
		idx := i
		if t.reverse {
			idx = n - 1 - i
		}
		if bits[idx] == 1 {
			sum++
		} else {
			sum--
		}
		if sum > z {
			z = sum
		} else if -sum > z {
			z = -sum
		}
	}

	fn, fz := float64(n), float64(z)
	sqrtN := math.Sqrt(fn)

	sum1 := 0.0
	for k := int(math.Floor((-fn/fz + 1) / 4)); k <= int(math.Floor((fn/fz-1)/4)); k++ {
		fk := float64(k)
		sum1 += normalCDF((4*fk+1)*fz/sqrtN) - normalCDF((4*fk-1)*fz/sqrtN)
	}
	sum2 := 0.0
	for k := int(math.Floor((-fn/fz - 3) / 4)); k <= int(math.Floor((fn/fz-1)/4)); k++ {
		fk := float64(k)
		sum2 += normalCDF((4*fk+3)*fz/sqrtN) - normalCDF((4*fk+1)*fz/sqrtN)
	}

	return []float64{clampP(1.0 - sum1 + sum2)}
}
