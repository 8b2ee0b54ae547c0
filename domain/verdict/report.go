package verdict

import (
	"fmt"
	"strings"

	"gorand/domain/tier"
)

// RenderTiered produces the plain-text report for a tiered battery run:
// the overall verdict, the per-test table, and guidance on what more
// data would unlock.
func RenderTiered(bitCount int, t tier.Descriptor, outcomes []TestOutcome, s Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "NIST Statistical Test Suite - Results\n")
	fmt.Fprintf(&b, "======================================\n\n")
	fmt.Fprintf(&b, "Dataset: %d bits\n", bitCount)
	fmt.Fprintf(&b, "Test Tier: Level %d - %s (%s)\n\n", t.Level, t.Name, t.Description)
	fmt.Fprintf(&b, "Overall: %d/%d tests passed (binary pass/fail)\n", s.Passed, s.Total)
	fmt.Fprintf(&b, "Quality Score: %.1f%% (weighted by p-values)\n\n", s.SuccessRate)
	fmt.Fprintf(&b, "Individual Test Results:\n")
	fmt.Fprintf(&b, "------------------------\n")

	for _, o := range outcomes {
		mark := "✗"
		if o.Passed {
			mark = "✓"
		}
		fmt.Fprintf(&b, "  %s %s: p-value = %.6f\n", mark, o.Name, o.PValue)
	}

	fmt.Fprintf(&b, "\n\nAll tests use significance level α = %.2f\n", Alpha)
	fmt.Fprintf(&b, "Tests pass if p-value ≥ %.2f\n\n", Alpha)

	fmt.Fprintf(&b, "Test Coverage:\n")
	fmt.Fprintf(&b, "-------------\n")
	if next, ok := tier.Next(t); ok {
		fmt.Fprintf(&b, "Current: Tier %d (%s) - %d tests run\n", t.Level, t.Description, s.Total)
		fmt.Fprintf(&b, "Recommended: %d bits (~%d numbers) for optimal reliability\n",
			t.RecommendedBits, t.RecommendedBits/32)
		fmt.Fprintf(&b, "Next Tier: Level %d (%s) requires %d bits (~%d numbers)\n",
			next.Level, next.Name, next.MinBits, next.MinBits/32)
	} else {
		fmt.Fprintf(&b, "Maximum tier reached (Tier %d). All NIST tests available with optimal reliability.\n", t.Level)
	}

	return b.String()
}

// RenderQuick produces the plain-text report for the small-sample
// battery, including a coarse interpretation band and a pointer at the
// data volume needed for the full suite.
func RenderQuick(bitCount int, outcomes []TestOutcome, passed int, passRate float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Enhanced Statistical Analysis (Small Dataset)\n")
	fmt.Fprintf(&b, "===============================================\n")
	fmt.Fprintf(&b, "Input Size: %d bits\n", bitCount)
	fmt.Fprintf(&b, "Tests Run: %d\n", len(outcomes))
	fmt.Fprintf(&b, "Tests Passed: %d/%d (%.1f%%)\n\n", passed, len(outcomes), passRate)
	fmt.Fprintf(&b, "Individual Test Results:\n")
	fmt.Fprintf(&b, "-----------------------\n")

	for _, o := range outcomes {
		status := "FAIL ✗"
		if o.Passed {
			status = "PASS ✓"
		}
		fmt.Fprintf(&b, "%-30s %s (stat=%.4f)\n  %s\n\n", o.Name, status, o.Statistic, o.Description)
	}

	fmt.Fprintf(&b, "\nInterpretation:\n")
	fmt.Fprintf(&b, "---------------\n")
	switch {
	case passRate >= 80.0:
		fmt.Fprintf(&b, "✓ GOOD: The sequence shows good randomness properties.\n")
	case passRate >= 50.0:
		fmt.Fprintf(&b, "⚠ MODERATE: The sequence shows some randomness but has weaknesses.\n")
	default:
		fmt.Fprintf(&b, "✗ POOR: The sequence shows poor randomness properties.\n")
	}

	fmt.Fprintf(&b, "\nNote: These are simplified statistical tests suitable for small datasets.\n")
	fmt.Fprintf(&b, "For comprehensive analysis, provide 313+ numbers (10,000+ bits) to enable full NIST testing.\n")

	return b.String()
}
