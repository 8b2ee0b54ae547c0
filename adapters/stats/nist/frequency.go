package nist

import (
	"math"

	"gorand/domain/bitstream"
)

// FrequencyTest is the monobit test: the proportion of ones should be
// close to one half, which every other test in the suite presumes.
type FrequencyTest struct{}

func NewFrequencyTest() *FrequencyTest { return &FrequencyTest{} }

func (t *FrequencyTest) Name() string { return "Frequency" }
func (t *FrequencyTest) Tier() int    { return 1 }
func (t *FrequencyTest) MinBits() int { return 0 }

func (t *FrequencyTest) Run(bits bitstream.Stream) []float64 {
	n := float64(bits.Len())
	if n == 0 {
		return nil
	}

	sum := 0.0
	for _, b := range bits {
		if b == 1 {
			sum++
		} else {
			sum--
		}
	}

	sObs := math.Abs(sum) / math.Sqrt(n)
	p := math.Erfc(sObs / math.Sqrt2)
	return []float64{clampP(p)}
}

// BlockFrequencyTest slices the stream into fixed blocks and checks the
// proportion of ones within each, catching local bias that the global
// monobit test averages away.
type BlockFrequencyTest struct{}

func NewBlockFrequencyTest() *BlockFrequencyTest { return &BlockFrequencyTest{} }

func (t *BlockFrequencyTest) Name() string { return "BlockFrequency" }
func (t *BlockFrequencyTest) Tier() int    { return 2 }
func (t *BlockFrequencyTest) MinBits() int { return 0 }

func (t *BlockFrequencyTest) Run(bits bitstream.Stream) []float64 {
	n := bits.Len()

	blockSize := 100
	if n < 1000 {
		blockSize = n / 10
	}
	if blockSize == 0 {
		return nil
	}

	numBlocks := n / blockSize
	if numBlocks == 0 {
		return nil
	}

	chiSq := 0.0
	for i := 0; i < numBlocks; i++ {
		ones := 0
		for _, b := range bits[i*blockSize : (i+1)*blockSize] {
			if b == 1 {
				ones++
			}
		}
		pi := float64(ones) / float64(blockSize)
		dev := pi - 0.5
		chiSq += dev * dev
	}
	chiSq *= 4.0 * float64(blockSize)

	p := igamc(float64(numBlocks)/2.0, chiSq/2.0)
	return []float64{clampP(p)}
}
