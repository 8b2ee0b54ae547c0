package nist

import (
	"testing"

	"gorand/domain/bitstream"
)

func TestRunsPrerequisiteShortCircuit(t *testing.T) {
	// A stream whose ones proportion is far from 1/2 fails the
	// frequency prerequisite and reports p = 0 without running.
	pvals := NewRunsTest().Run(constantBits(100, 1))
	if len(pvals) != 1 {
		t.Fatalf("Expected one p-value, got %d", len(pvals))
	}
	if pvals[0] != 0.0 {
		t.Errorf("Expected p-value 0.0 when prerequisite fails, got %f", pvals[0])
	}
}

func TestRunsOscillatingStream(t *testing.T) {
	// Maximal oscillation is as non-random as no oscillation.
	pvals := NewRunsTest().Run(alternatingBits(100))
	if len(pvals) != 1 {
		t.Fatalf("Expected one p-value, got %d", len(pvals))
	}
	if pvals[0] >= 0.01 {
		t.Errorf("Expected failing p-value for alternating stream, got %f", pvals[0])
	}
}

func TestRunsTooShort(t *testing.T) {
	if got := NewRunsTest().Run(bitstream.Stream{1}); got != nil {
		t.Errorf("Expected omission below 2 bits, got %d results", len(got))
	}
}

func TestLongestRunRegimes(t *testing.T) {
	test := NewLongestRunTest()

	if got := test.Run(lcgBits(100)); got != nil {
		t.Errorf("Expected omission below 128 bits, got %d results", len(got))
	}

	for _, n := range []int{128, 6272, 750000} {
		pvals := test.Run(lcgBits(n))
		if len(pvals) != 1 {
			t.Fatalf("n=%d: expected one p-value, got %d", n, len(pvals))
		}
		if pvals[0] < 0 || pvals[0] > 1 {
			t.Errorf("n=%d: p-value %f outside [0,1]", n, pvals[0])
		}
	}
}

func TestLongestRunDetectsConstantStream(t *testing.T) {
	pvals := NewLongestRunTest().Run(constantBits(6272, 1))
	if len(pvals) != 1 {
		t.Fatalf("Expected one p-value, got %d", len(pvals))
	}
	if pvals[0] >= 0.01 {
		t.Errorf("Expected failing p-value for constant stream, got %f", pvals[0])
	}
}
