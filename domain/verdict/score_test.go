package verdict

import (
	"math"
	"strings"
	"testing"

	"gorand/domain/tier"
)

func outcome(name string, passed bool, p float64) TestOutcome {
	return TestOutcome{Name: name, Passed: passed, PValue: p}
}

// TestScoreIdealBattery tests the score for perfectly distributed p-values
func TestScoreIdealBattery(t *testing.T) {
	outcomes := []TestOutcome{
		outcome("A", true, 0.5),
		outcome("B", true, 0.5),
		outcome("C", true, 0.5),
	}

	s := Score(outcomes)
	if s.Passed != 3 || s.Total != 3 {
		t.Errorf("Expected 3/3 passed, got %d/%d", s.Passed, s.Total)
	}
	if math.Abs(s.SuccessRate-100.0) > 1e-9 {
		t.Errorf("Expected success rate 100, got %f", s.SuccessRate)
	}
}

// TestScorePenalizesExtremePValues tests the distribution quality penalty
func TestScorePenalizesExtremePValues(t *testing.T) {
	// All tests pass but p-values hug 1.0: pass rate 100, quality 0
	suspicious := []TestOutcome{
		outcome("A", true, 1.0),
		outcome("B", true, 1.0),
	}
	s := Score(suspicious)
	if math.Abs(s.SuccessRate-80.0) > 1e-9 {
		t.Errorf("Expected success rate 80 for p=1.0 battery, got %f", s.SuccessRate)
	}

	// Barely-passing p-values attract nearly the same penalty
	marginal := []TestOutcome{
		outcome("A", true, 0.01),
		outcome("B", true, 0.01),
	}
	s = Score(marginal)
	expected := 80.0 + 0.2*100.0*(1.0-0.49/0.5)
	if math.Abs(s.SuccessRate-expected) > 1e-6 {
		t.Errorf("Expected success rate %.4f for marginal battery, got %f", expected, s.SuccessRate)
	}
}

// TestScoreMixedResults tests the 80/20 weighting with failures present
func TestScoreMixedResults(t *testing.T) {
	outcomes := []TestOutcome{
		outcome("A", true, 0.5),
		outcome("B", true, 0.5),
		outcome("C", false, 0.001),
		outcome("D", false, 0.002),
	}

	s := Score(outcomes)
	// pass rate 50 -> 40 points; passing avg 0.5 -> full 20 points
	if math.Abs(s.SuccessRate-60.0) > 1e-9 {
		t.Errorf("Expected success rate 60, got %f", s.SuccessRate)
	}
	if s.Passed != 2 {
		t.Errorf("Expected 2 passed, got %d", s.Passed)
	}
}

// TestScoreAllFailing tests that no passing tests means zero p-quality
func TestScoreAllFailing(t *testing.T) {
	outcomes := []TestOutcome{
		outcome("A", false, 0.001),
		outcome("B", false, 0.0),
	}

	s := Score(outcomes)
	if s.SuccessRate != 0 {
		t.Errorf("Expected success rate 0, got %f", s.SuccessRate)
	}
}

// TestScoreEmpty tests the degenerate empty battery
func TestScoreEmpty(t *testing.T) {
	s := Score(nil)
	if s.Total != 0 || s.Passed != 0 || s.SuccessRate != 0 {
		t.Errorf("Expected zero summary, got %+v", s)
	}
}

// TestScoreAvgPValue tests that the informational average spans all tests
func TestScoreAvgPValue(t *testing.T) {
	outcomes := []TestOutcome{
		outcome("A", true, 0.4),
		outcome("B", false, 0.0),
	}

	s := Score(outcomes)
	if math.Abs(s.AvgPValue-0.2) > 1e-9 {
		t.Errorf("Expected average p-value 0.2, got %f", s.AvgPValue)
	}
}

// TestPassRate tests the simple rate used by the small-sample battery
func TestPassRate(t *testing.T) {
	outcomes := []TestOutcome{
		{Name: "A", Passed: true},
		{Name: "B", Passed: true},
		{Name: "C", Passed: false},
	}

	passed, rate := PassRate(outcomes)
	if passed != 2 {
		t.Errorf("Expected 2 passed, got %d", passed)
	}
	if math.Abs(rate-66.66666666666667) > 1e-9 {
		t.Errorf("Expected rate ~66.67, got %f", rate)
	}

	if passed, rate := PassRate(nil); passed != 0 || rate != 0 {
		t.Errorf("Expected zero rate for empty outcomes, got %d, %f", passed, rate)
	}
}

// TestSortByName tests deterministic ordering including numbered sub-results
func TestSortByName(t *testing.T) {
	outcomes := []TestOutcome{
		{Name: "Serial-2"},
		{Name: "Frequency"},
		{Name: "Serial-1"},
		{Name: "CumulativeSums-Reverse"},
	}

	SortByName(outcomes)

	expected := []string{"CumulativeSums-Reverse", "Frequency", "Serial-1", "Serial-2"}
	for i, name := range expected {
		if outcomes[i].Name != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, outcomes[i].Name)
		}
	}
}

// TestRenderTiered tests the tiered report layout
func TestRenderTiered(t *testing.T) {
	tr, err := tier.Select(150)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	outcomes := []TestOutcome{
		outcome("Frequency", true, 0.731214),
		outcome("Runs", false, 0.002150),
	}
	s := Score(outcomes)
	report := RenderTiered(150, tr, outcomes, s)

	for _, want := range []string{
		"NIST Statistical Test Suite - Results",
		"Dataset: 150 bits",
		"Test Tier: Level 1 - Minimal",
		"✓ Frequency: p-value = 0.731214",
		"✗ Runs: p-value = 0.002150",
		"significance level α = 0.01",
		"Next Tier: Level 2 (Light) requires 1000 bits",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("Report missing %q", want)
		}
	}
}

// TestRenderTieredTopTier tests the max-tier guidance branch
func TestRenderTieredTopTier(t *testing.T) {
	tr, err := tier.Select(1_500_000)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	report := RenderTiered(1_500_000, tr, nil, Summary{})
	if !strings.Contains(report, "Maximum tier reached (Tier 5)") {
		t.Error("Expected maximum-tier guidance")
	}
	if strings.Contains(report, "Next Tier") {
		t.Error("Did not expect a next-tier hint at the top tier")
	}
}

// TestRenderQuick tests the small-sample report layout and bands
func TestRenderQuick(t *testing.T) {
	outcomes := []TestOutcome{
		{Name: "Frequency Test", Passed: true, Statistic: 0.5, Description: "Ones: 5, Zeros: 5, Ratio: 0.500 (expect ~0.500)"},
		{Name: "Runs Test", Passed: false, Statistic: 3.2, Description: "Observed runs: 2, Expected: 6.0, Statistic: 3.200"},
	}

	report := RenderQuick(10, outcomes, 1, 50.0)
	for _, want := range []string{
		"Simplified Statistical Analysis (Small Dataset)",
		"Input Size: 10 bits",
		"Tests Passed: 1/2 (50.0%)",
		"PASS ✓",
		"FAIL ✗",
		"⚠ MODERATE",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("Report missing %q", want)
		}
	}

	good := RenderQuick(10, outcomes, 2, 100.0)
	if !strings.Contains(good, "✓ GOOD") {
		t.Error("Expected GOOD band at 100% pass rate")
	}
	poor := RenderQuick(10, outcomes, 0, 0.0)
	if !strings.Contains(poor, "✗ POOR") {
		t.Error("Expected POOR band at 0% pass rate")
	}
}
