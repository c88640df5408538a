// Package analysis implements the statistical comparison procedures of the
// study: the chi-squared independence test, the Kruskal-Wallis rank test,
// paired-quantile comparison, and descriptive sample summaries. Every
// procedure is a pure function of its inputs and returns raw statistics;
// interpreting a p-value against a significance level is left to callers.
package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jwarwick/hr-explore/domain/batted"
	"github.com/jwarwick/hr-explore/domain/core"
	"github.com/jwarwick/hr-explore/domain/stats"
)

// lowExpectedThreshold is the standard validity caveat for chi-squared
// expected cell counts.
const lowExpectedThreshold = 5.0

// ChiSquareIndependence tests whether the categorical outcome distribution
// is independent of the cohort label.
//
// Expected count per cell is (row_total * col_total) / grand_total, the
// statistic is the sum of (observed-expected)^2/expected over cells, and
// the p-value is the upper tail of the chi-squared distribution with
// (rows-1)*(cols-1) degrees of freedom. Rows and columns with a zero
// marginal total carry no information and are excluded from both the sum
// and the degrees of freedom.
//
// Small expected counts are surfaced as a warning on the result for the
// caller to inspect; the engine does not reject the table over them.
func ChiSquareIndependence(table stats.ContingencyTable) (stats.TestResult, error) {
	rows := make([]batted.EventType, 0, len(table.Rows()))
	for _, et := range table.Rows() {
		if table.RowTotal(et) > 0 {
			rows = append(rows, et)
		}
	}
	cols := make([]batted.Segment, 0, len(table.Cols()))
	for _, seg := range table.Cols() {
		if table.ColTotal(seg) > 0 {
			cols = append(cols, seg)
		}
	}

	if len(rows) < 2 || len(cols) < 2 {
		return stats.TestResult{}, core.NewInsufficientSampleError(
			fmt.Sprintf("contingency table (%dx%d non-empty)", len(rows), len(cols)), table.GrandTotal())
	}

	grand := float64(table.GrandTotal())
	statistic := 0.0
	minExpected := math.Inf(1)

	for _, et := range rows {
		for _, seg := range cols {
			expected := float64(table.RowTotal(et)) * float64(table.ColTotal(seg)) / grand
			observed := float64(table.Count(et, seg))
			statistic += (observed - expected) * (observed - expected) / expected
			if expected < minExpected {
				minExpected = expected
			}
		}
	}

	df := (len(rows) - 1) * (len(cols) - 1)
	chiDist := distuv.ChiSquared{K: float64(df)}
	pValue := 1 - chiDist.CDF(statistic)

	result := stats.TestResult{
		TestName:         "chi_square_independence",
		Statistic:        statistic,
		DegreesOfFreedom: df,
		PValue:           pValue,
		MinExpected:      minExpected,
	}
	if minExpected < lowExpectedThreshold {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("expected cell count %.2f below %.0f; chi-squared approximation may be poor", minExpected, lowExpectedThreshold))
	}

	return result, nil
}
