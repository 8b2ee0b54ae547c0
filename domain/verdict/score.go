package verdict

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// Summary carries the aggregate quality judgment over a set of
// test outcomes.
type Summary struct {
	Passed    int
	Total     int
	AvgPValue float64
	// SuccessRate is the weighted quality score on a 0-100 scale.
	SuccessRate float64
}

// Score weighs a battery's outcomes into a single quality figure.
//
// Two components combine: the pass rate (weighted 80%) and the p-value
// distribution of the passing tests (weighted 20%). Truly random data
// should not only pass, its p-values should scatter around 0.5; an
// average hugging 1.0 is suspiciously uniform and one hugging the
// significance level is barely scraping through, so both attract a
// linear penalty proportional to the distance from 0.5.
func Score(outcomes []TestOutcome) Summary {
	total := len(outcomes)
	if total == 0 {
		return Summary{}
	}

	all := make(stats.Float64Data, 0, total)
	passing := make(stats.Float64Data, 0, total)
	passed := 0
	for _, o := range outcomes {
		all = append(all, o.PValue)
		if o.Passed {
			passed++
			passing = append(passing, o.PValue)
		}
	}

	avgP, err := stats.Mean(all)
	if err != nil {
		avgP = 0
	}

	passRate := float64(passed) / float64(total) * 100.0

	pQuality := 0.0
	if len(passing) > 0 {
		avgPassing, err := stats.Mean(passing)
		if err == nil {
			deviation := avgPassing - 0.5
			if deviation < 0 {
				deviation = -deviation
			}
			pQuality = 100.0 * (1.0 - deviation/0.5)
			if pQuality < 0 {
				pQuality = 0
			} else if pQuality > 100 {
				pQuality = 100
			}
		}
	}

	return Summary{
		Passed:      passed,
		Total:       total,
		AvgPValue:   avgP,
		SuccessRate: passRate*0.8 + pQuality*0.2,
	}
}

// PassRate returns the plain percentage of passing outcomes, used by
// the small-sample battery where p-values are not available.
func PassRate(outcomes []TestOutcome) (passed int, rate float64) {
	for _, o := range outcomes {
		if o.Passed {
			passed++
		}
	}
	if len(outcomes) == 0 {
		return 0, 0
	}
	return passed, float64(passed) / float64(len(outcomes)) * 100.0
}

// SortByName orders outcomes lexicographically so display and
// persistence are deterministic regardless of execution order.
func SortByName(outcomes []TestOutcome) {
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Name < outcomes[j].Name
	})
}
