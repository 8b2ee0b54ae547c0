package nist

import (
	"testing"

	"gorand/domain/bitstream"
)

func TestBerlekampMassey(t *testing.T) {
	cases := []struct {
		name string
		bits bitstream.Stream
		want int
	}{
		{"all zeros", bitstream.Stream{0, 0, 0, 0, 0, 0, 0, 0}, 0},
		{"all ones", bitstream.Stream{1, 1, 1, 1, 1, 1, 1, 1}, 1},
		{"alternating", bitstream.Stream{0, 1, 0, 1, 0, 1, 0, 1}, 2},
		{"late impulse", bitstream.Stream{0, 0, 1}, 3},
		{"single one", bitstream.Stream{1}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := berlekampMassey(tc.bits); got != tc.want {
				t.Errorf("berlekampMassey(%v): expected L=%d, got %d", tc.bits, tc.want, got)
			}
		})
	}
}

func TestBerlekampMasseyLFSRSequence(t *testing.T) {
	// A primitive degree-4 feedback polynomial emits a 15-bit
	// m-sequence whose linear complexity is exactly 4.
	reg := [4]uint8{1, 0, 0, 0}
	seq := make(bitstream.Stream, 30)
	for i := range seq {
		out := reg[3]
		feedback := reg[3] ^ reg[0]
		reg[3], reg[2], reg[1], reg[0] = reg[2], reg[1], reg[0], feedback
		seq[i] = out
	}

	if got := berlekampMassey(seq); got != 4 {
		t.Errorf("Expected linear complexity 4 for LFSR output, got %d", got)
	}
}

func TestLinearComplexityPreconditions(t *testing.T) {
	test := NewLinearComplexityTest()
	if test.MinBits() != 10000 {
		t.Errorf("Expected MinBits 10000, got %d", test.MinBits())
	}
	if got := test.Run(lcgBits(5000)); got != nil {
		t.Errorf("Expected omission below block length 100, got %d results", len(got))
	}

	pvals := test.Run(lcgBits(20000))
	if len(pvals) != 1 {
		t.Fatalf("Expected one p-value, got %d", len(pvals))
	}
	if pvals[0] < 0 || pvals[0] > 1 {
		t.Errorf("p-value %f outside [0,1]", pvals[0])
	}
}

func TestLinearComplexityFlagsLFSR(t *testing.T) {
	// A short register repeated across every block concentrates all
	// T values in one bucket.
	reg := [4]uint8{1, 0, 0, 0}
	seq := make(bitstream.Stream, 20000)
	for i := range seq {
		out := reg[3]
		feedback := reg[3] ^ reg[0]
		reg[3], reg[2], reg[1], reg[0] = reg[2], reg[1], reg[0], feedback
		seq[i] = out
	}

	pvals := NewLinearComplexityTest().Run(seq)
	if len(pvals) != 1 {
		t.Fatalf("Expected one p-value, got %d", len(pvals))
	}
	if pvals[0] >= 0.01 {
		t.Errorf("Expected failing p-value for LFSR stream, got %f", pvals[0])
	}
}
