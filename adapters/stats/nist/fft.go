package nist

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"gorand/domain/bitstream"
)

// SpectralTest runs a discrete Fourier transform over the ±1 stream and
// counts peaks below the 95% threshold. Periodic features show up as
// excess peak energy that an unpredictable stream does not have.
type SpectralTest struct{}

func NewSpectralTest() *SpectralTest { return &SpectralTest{} }

func (t *SpectralTest) Name() string { return "FFT" }
func (t *SpectralTest) Tier() int    { return 1 }
func (t *SpectralTest) MinBits() int { return 0 }

func (t *SpectralTest) Run(bits bitstream.Stream) []float64 {
	n := bits.Len()
	if n < 2 {
		return nil
	}

	x := make([]float64, n)
	for i, b := range bits {
		if b == 1 {
			x[i] = 1.0
		} else {
			x[i] = -1.0
		}
	}

	coeffs := fourier.NewFFT(n).Coefficients(nil, x)

	half := n / 2
	threshold := math.Sqrt(math.Log(1.0/0.05) * float64(n))

	below := 0.0
	for j := 0; j < half; j++ {
		if cmplx.Abs(coeffs[j]) < threshold {
			below++
		}
	}

	expected := 0.95 * float64(half)
	d := (below - expected) / math.Sqrt(float64(n)*0.95*0.05/4.0)
	p := math.Erfc(math.Abs(d) / math.Sqrt2)
	return []float64{clampP(p)}
}
