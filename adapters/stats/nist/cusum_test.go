package nist

import (
	"testing"
)

func TestCumulativeSumsNames(t *testing.T) {
	forward := NewCumulativeSumsForward()
	reverse := NewCumulativeSumsReverse()

	if forward.Name() != "CumulativeSums-Forward" {
		t.Errorf("Unexpected forward name %q", forward.Name())
	}
	if reverse.Name() != "CumulativeSums-Reverse" {
		t.Errorf("Unexpected reverse name %q", reverse.Name())
	}
}

func TestCumulativeSumsSymmetricStream(t *testing.T) {
	// A balanced alternating stream has maximal excursion 1 in both
	// directions, so forward and reverse agree exactly.
	bits := alternatingBits(200)

	fwd := NewCumulativeSumsForward().Run(bits)
	rev := NewCumulativeSumsReverse().Run(bits)
	if len(fwd) != 1 || len(rev) != 1 {
		t.Fatalf("Expected one p-value each, got %d and %d", len(fwd), len(rev))
	}
	if fwd[0] != rev[0] {
		t.Errorf("Expected symmetric p-values, got forward %f reverse %f", fwd[0], rev[0])
	}
	if fwd[0] < 0.01 {
		t.Errorf("Expected tight excursion to pass, got %f", fwd[0])
	}
}

func TestCumulativeSumsDriftingStream(t *testing.T) {
	pvals := NewCumulativeSumsForward().Run(constantBits(200, 1))
	if len(pvals) != 1 {
		t.Fatalf("Expected one p-value, got %d", len(pvals))
	}
	if pvals[0] >= 0.01 {
		t.Errorf("Expected failing p-value for monotone walk, got %f", pvals[0])
	}
}
