package nist

import (
	"math"
	"testing"

	"gorand/domain/bitstream"
)

func TestExcursionCycles(t *testing.T) {
	cases := []struct {
		name string
		bits bitstream.Stream
		want int
	}{
		{"two crossings", bitstream.Stream{1, 0, 1, 0}, 2},
		{"never returns", bitstream.Stream{1, 1}, 1},
		{"single return", bitstream.Stream{1, 0}, 1},
		{"open tail", bitstream.Stream{1, 0, 1, 1}, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := excursionCycles(tc.bits); got != tc.want {
				t.Errorf("excursionCycles(%v): expected %d, got %d", tc.bits, tc.want, got)
			}
		})
	}
}

func TestExcursionStateProbsSumToOne(t *testing.T) {
	for x := 1; x <= 4; x++ {
		sum := 0.0
		for k := 0; k <= 5; k++ {
			p := excursionStateProb(x, k)
			if p < 0 || p > 1 {
				t.Errorf("State %d bucket %d: probability %f outside [0,1]", x, k, p)
			}
			sum += p
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("State %d: bucket probabilities sum to %f", x, sum)
		}
	}
}

func TestExcursionStateProbKnownValues(t *testing.T) {
	// For |x| = 1 the cycle visit distribution is geometric with
	// ratio 1/2.
	want := []float64{0.5, 0.25, 0.125, 0.0625, 0.03125, 0.03125}
	for k, w := range want {
		if got := excursionStateProb(1, k); math.Abs(got-w) > 1e-12 {
			t.Errorf("excursionStateProb(1, %d): expected %f, got %f", k, w, got)
		}
	}
}

func TestRandomExcursionsNeedsCycles(t *testing.T) {
	// An alternating stream crosses zero every second step, giving
	// plenty of cycles; a monotone stream never comes back.
	if got := NewRandomExcursionsTest().Run(constantBits(5000, 1)); got != nil {
		t.Errorf("Expected omission for cycle-free walk, got %d results", len(got))
	}

	pvals := NewRandomExcursionsTest().Run(alternatingBits(5000))
	if len(pvals) != 8 {
		t.Fatalf("Expected 8 state p-values, got %d", len(pvals))
	}
	for i, p := range pvals {
		if p < 0 || p > 1 {
			t.Errorf("State %d: p-value %f outside [0,1]", i, p)
		}
	}
}

func TestRandomExcursionsVariantShape(t *testing.T) {
	if got := NewRandomExcursionsVariantTest().Run(constantBits(5000, 0)); got != nil {
		t.Errorf("Expected omission for cycle-free walk, got %d results", len(got))
	}

	pvals := NewRandomExcursionsVariantTest().Run(alternatingBits(5000))
	if len(pvals) != 18 {
		t.Fatalf("Expected 18 state p-values, got %d", len(pvals))
	}
	for i, p := range pvals {
		if p < 0 || p > 1 {
			t.Errorf("State %d: p-value %f outside [0,1]", i, p)
		}
	}
}
