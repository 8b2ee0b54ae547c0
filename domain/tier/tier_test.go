package tier

import (
	"errors"
	"testing"

	"gorand/domain/core"
)

// TestSelectBoundaries tests tier thresholds at their exact edges
func TestSelectBoundaries(t *testing.T) {
	tests := []struct {
		bits          int
		expectedLevel int
		expectedName  string
	}{
		{100, 1, "Minimal"},
		{999, 1, "Minimal"},
		{1_000, 2, "Light"},
		{9_999, 2, "Light"},
		{10_000, 3, "Standard"},
		{99_999, 3, "Standard"},
		{100_000, 4, "Full"},
		{999_999, 4, "Full"},
		{1_000_000, 5, "Comprehensive"},
		{50_000_000, 5, "Comprehensive"},
	}

	for _, test := range tests {
		d, err := Select(test.bits)
		if err != nil {
			t.Errorf("Select(%d): unexpected error %v", test.bits, err)
			continue
		}
		if d.Level != test.expectedLevel {
			t.Errorf("Select(%d): expected level %d, got %d", test.bits, test.expectedLevel, d.Level)
		}
		if d.Name != test.expectedName {
			t.Errorf("Select(%d): expected %s, got %s", test.bits, test.expectedName, d.Name)
		}
	}
}

// TestSelectInsufficient tests the below-floor signal
func TestSelectInsufficient(t *testing.T) {
	for _, bits := range []int{0, 4, 50, 99} {
		_, err := Select(bits)
		if !errors.Is(err, core.ErrInsufficientData) {
			t.Errorf("Select(%d): expected ErrInsufficientData, got %v", bits, err)
		}
	}
}

// TestLadderShape tests ordering and monotonicity of the tier table
func TestLadderShape(t *testing.T) {
	ladder := Ladder()
	if len(ladder) != 5 {
		t.Fatalf("Expected 5 tiers, got %d", len(ladder))
	}

	for i, d := range ladder {
		if d.Level != i+1 {
			t.Errorf("Tier %d: expected level %d, got %d", i, i+1, d.Level)
		}
		if d.RecommendedBits != d.MinBits*10 {
			t.Errorf("Tier %d: recommended bits should be 10x minimum, got %d vs %d", d.Level, d.RecommendedBits, d.MinBits)
		}
		if i > 0 && d.MinBits <= ladder[i-1].MinBits {
			t.Errorf("Tier %d: minimum bits not increasing", d.Level)
		}
	}
}

// TestNext tests the next-tier lookup used by report guidance
func TestNext(t *testing.T) {
	first, err := Select(100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	next, ok := Next(first)
	if !ok {
		t.Fatal("Expected a tier above Minimal")
	}
	if next.Level != 2 {
		t.Errorf("Expected level 2 above Minimal, got %d", next.Level)
	}

	top, err := Select(2_000_000)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := Next(top); ok {
		t.Error("Expected no tier above Comprehensive")
	}
}
