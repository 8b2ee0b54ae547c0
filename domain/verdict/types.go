package verdict

// Alpha is the significance level shared by every test in the tiered
// battery. A test passes when its p-value is at or above this level.
const Alpha = 0.01

// TestOutcome is the verdict of a single statistical test, or of one
// sub-result for tests that report several.
type TestOutcome struct {
	Name        string  `json:"name"`
	Passed      bool    `json:"passed"`
	PValue      float64 `json:"p_value"`
	Statistic   float64 `json:"statistic,omitempty"`
	Description string  `json:"description"`
}

// BatteryResults aggregates one battery run over a bit stream. Both the
// tiered battery and the small-sample battery report through this shape
// so callers see a single contract regardless of which path ran.
type BatteryResults struct {
	BitCount    int           `json:"bit_count"`
	TestsPassed int           `json:"tests_passed"`
	TotalTests  int           `json:"total_tests"`
	SuccessRate float64       `json:"success_rate"`
	Tests       []TestOutcome `json:"tests"`
	RawReport   string        `json:"raw_report,omitempty"`
}
