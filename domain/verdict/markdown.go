package verdict

import (
	"fmt"
	"strings"
	"time"
)

// QueryReport carries the fields of a stored query that the markdown
// report renders. It mirrors the history projection without binding
// this package to the storage layer.
type QueryReport struct {
	ID           string
	CreatedAt    time.Time
	InputFormat  string
	BitCount     int
	Valid        bool
	QualityScore float64
	Message      string
	Outcomes     []TestOutcome
}

// RenderMarkdown produces a markdown validation report for one stored
// query: the verdict header, the query metadata, and the per-test
// outcome table.
func RenderMarkdown(r QueryReport) string {
	var b strings.Builder

	verdict := "NOT VALID ✗"
	if r.Valid {
		verdict = "VALID ✓"
	}

	fmt.Fprintf(&b, "# Randomness Validation Report\n\n")
	fmt.Fprintf(&b, "| | |\n")
	fmt.Fprintf(&b, "|---|---|\n")
	fmt.Fprintf(&b, "| Query | `%s` |\n", r.ID)
	fmt.Fprintf(&b, "| Submitted | %s |\n", r.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "| Input format | %s |\n", r.InputFormat)
	fmt.Fprintf(&b, "| Bits analyzed | %d |\n", r.BitCount)
	fmt.Fprintf(&b, "| Verdict | **%s** |\n", verdict)
	fmt.Fprintf(&b, "| Quality score | %.2f |\n", r.QualityScore)

	if r.Message != "" {
		fmt.Fprintf(&b, "\n> %s\n", r.Message)
	}

	fmt.Fprintf(&b, "\n## Test Outcomes\n\n")
	if len(r.Outcomes) == 0 {
		fmt.Fprintf(&b, "_No per-test outcomes were recorded for this query._\n")
		return b.String()
	}

	fmt.Fprintf(&b, "| Test | Result | P-value | Detail |\n")
	fmt.Fprintf(&b, "|------|--------|---------|--------|\n")
	for _, o := range r.Outcomes {
		result := "fail ✗"
		if o.Passed {
			result = "pass ✓"
		}
		fmt.Fprintf(&b, "| %s | %s | %.4f | %s |\n", o.Name, result, o.PValue, o.Description)
	}

	return b.String()
}
