package nist

import (
	"math"

	"gorand/domain/bitstream"
)

// SerialTest checks the uniformity of overlapping m-bit patterns via
// the psi-square statistic. The first and second differences of psi
// across pattern lengths yield two p-values, exposed as separate
// battery entries so each can pass or fail on its own.
type SerialTest struct {
	second bool
}

func NewSerialFirst() *SerialTest  { return &SerialTest{} }
func NewSerialSecond() *SerialTest { return &SerialTest{second: true} }

func (t *SerialTest) Name() string {
	if t.second {
		return "Serial-2"
	}
	return "Serial-1"
}

func (t *SerialTest) Tier() int    { return 3 }
func (t *SerialTest) MinBits() int { return 200 }

func (t *SerialTest) Run(bits bitstream.Stream) []float64 {
	n := bits.Len()
	m := 16
	if n/100 < m {
		m = n / 100
	}
	if m < 2 {
		return nil
	}

	psiM := psiSquare(bits, m)
	psiM1 := psiSquare(bits, m-1)
	psiM2 := psiSquare(bits, m-2)

	if t.second {
		delta2 := psiM - 2.0*psiM1 + psiM2
		return []float64{clampP(igamc(math.Pow(2, float64(m-3)), delta2/2.0))}
	}
	delta := psiM - psiM1
	return []float64{clampP(igamc(math.Pow(2, float64(m-2)), delta/2.0))}
}

// psiSquare is (2^blockLen/n) * sum(counts^2) - n over the overlapping
// pattern counts of the circular stream; zero-length patterns
// contribute nothing.
func psiSquare(bits bitstream.Stream, blockLen int) float64 {
	if blockLen < 1 {
		return 0.0
	}
	n := bits.Len()
	counts := overlappingPatternCounts(bits, blockLen)

	sum := 0.0
	for _, count := range counts {
		sum += float64(count) * float64(count)
	}
	return sum*math.Pow(2, float64(blockLen))/float64(n) - float64(n)
}
