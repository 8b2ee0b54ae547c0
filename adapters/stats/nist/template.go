package nist

import (
	"gorand/domain/bitstream"
)

const templateLength = 9

// aperiodicTemplates lists every 9-bit pattern whose proper prefixes
// never equal the suffix of the same length. Only those patterns have
// independent non-overlapping occurrence counts; there are 148 of them.
func aperiodicTemplates() []bitstream.Stream {
	var templates []bitstream.Stream
	for v := 0; v < 1<<templateLength; v++ {
		bits := make(bitstream.Stream, templateLength)
		for i := 0; i < templateLength; i++ {
			bits[i] = uint8(v >> uint(templateLength-1-i) & 1)
		}
		if isBifixFree(bits) {
			templates = append(templates, bits)
		}
	}
	return templates
}

func isBifixFree(bits bitstream.Stream) bool {
	for k := 1; k < len(bits); k++ {
		match := true
		for i := 0; i < k; i++ {
			if bits[i] != bits[len(bits)-k+i] {
				match = false
				break
			}
		}
		if match {
			return false
		}
	}
	return true
}

// NonOverlappingTemplateTest counts disjoint occurrences of each
// aperiodic 9-bit template across 8 equal blocks and compares the
// per-block counts against their theoretical mean and variance. Each
// template yields its own p-value.
type NonOverlappingTemplateTest struct {
	templates []bitstream.Stream
}

func NewNonOverlappingTemplateTest() *NonOverlappingTemplateTest {
	return &NonOverlappingTemplateTest{templates: aperiodicTemplates()}
}

func (t *NonOverlappingTemplateTest) Name() string { return "NonOverlappingTemplate" }
func (t *NonOverlappingTemplateTest) Tier() int    { return 2 }
func (t *NonOverlappingTemplateTest) MinBits() int { return 0 }

func (t *NonOverlappingTemplateTest) Run(bits bitstream.Stream) []float64 {
	const blocks = 8
	m := templateLength
	blockLen := bits.Len() / blocks
	if blockLen < m {
		return nil
	}

	mu := float64(blockLen-m+1) / float64(int(1)<<uint(m))
	variance := float64(blockLen) * (1.0/float64(int(1)<<uint(m)) -
		float64(2*m-1)/float64(int(1)<<uint(2*m)))

	pvals := make([]float64, 0, len(t.templates))
	for _, template := range t.templates {
		chi := 0.0
		for b := 0; b < blocks; b++ {
			block := bits[b*blockLen : (b+1)*blockLen]
			count := 0
			for j := 0; j <= blockLen-m; {
				if matchesTemplate(block[j:j+m], template) {
					count++
					j += m
				} else {
					j++
				}
			}
			diff := float64(count) - mu
			chi += diff * diff / variance
		}
		pvals = append(pvals, clampP(igamc(float64(blocks)/2.0, chi/2.0)))
	}
	return pvals
}

func matchesTemplate(window, template bitstream.Stream) bool {
	for i := range template {
		if window[i] != template[i] {
			return false
		}
	}
	return true
}

// OverlappingTemplateTest counts overlapping runs of nine ones within
// 1032-bit blocks and checks the count distribution against the
// compound Poisson probabilities tabulated in SP 800-22.
type OverlappingTemplateTest struct{}

func NewOverlappingTemplateTest() *OverlappingTemplateTest {
	return &OverlappingTemplateTest{}
}

func (t *OverlappingTemplateTest) Name() string { return "OverlappingTemplate" }
func (t *OverlappingTemplateTest) Tier() int    { return 2 }
func (t *OverlappingTemplateTest) MinBits() int { return 0 }

func (t *OverlappingTemplateTest) Run(bits bitstream.Stream) []float64 {
	const (
		blockLen = 1032
		k        = 5
	)
	m := templateLength
	blocks := bits.Len() / blockLen
	if blocks < 1 {
		return nil
	}

	pi := [k + 1]float64{0.364091, 0.185659, 0.139381, 0.100571, 0.070432, 0.139865}

	var counts [k + 1]int
	for b := 0; b < blocks; b++ {
		block := bits[b*blockLen : (b+1)*blockLen]
		occurrences := 0
		for j := 0; j <= blockLen-m; j++ {
			allOnes := true
			for i := 0; i < m; i++ {
				if block[j+i] == 0 {
					allOnes = false
					break
				}
			}
			if allOnes {
				occurrences++
			}
		}
		if occurrences > k {
			occurrences = k
		}
		counts[occurrences]++
	}

	chi := 0.0
	for i := 0; i <= k; i++ {
		expected := float64(blocks) * pi[i]
		diff := float64(counts[i]) - expected
		chi += diff * diff / expected
	}

	return []float64{clampP(igamc(float64(k)/2.0, chi/2.0))}
}
