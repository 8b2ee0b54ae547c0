package nist

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// igamc is the regularized upper incomplete gamma function Q(a, x),
// the workhorse behind every chi-square shaped p-value in the suite.
// Expressed through the chi-squared survival function: a chi-squared
// variable with 2a degrees of freedom exceeds 2x with probability
// Q(a, x).
func igamc(a, x float64) float64 {
	if x <= 0 {
		return 1.0
	}
	return distuv.ChiSquared{K: 2 * a}.Survival(2 * x)
}

// normalCDF is the standard normal distribution function.
func normalCDF(x float64) float64 {
	return distuv.UnitNormal.CDF(x)
}

// clampP guards against numerical escape: any non-finite or
// out-of-range value collapses to a failing p-value.
func clampP(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0.0
	}
	if p > 1 {
		return 1.0
	}
	return p
}
