package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jwarwick/hr-explore/domain/core"
	"github.com/jwarwick/hr-explore/domain/stats"
)

// KruskalWallis tests whether two or more distance samples share a common
// distribution, without assuming normality.
//
// All observations are pooled and ranked 1..N with ties receiving the
// average rank of their block. The statistic is
//
//	H = 12/(N*(N+1)) * sum_i(R_i^2 / n_i) - 3*(N+1)
//
// divided by the tie correction 1 - sum(t^3 - t)/(N^3 - N), with the
// p-value from the upper tail of the chi-squared distribution with
// groups-1 degrees of freedom.
func KruskalWallis(samples []stats.DistributionSample) (stats.TestResult, error) {
	if len(samples) < 2 {
		return stats.TestResult{}, core.NewInsufficientSampleError("kruskal-wallis groups", len(samples))
	}
	for _, s := range samples {
		if s.Len() == 0 {
			return stats.TestResult{}, core.NewInsufficientSampleError(
				fmt.Sprintf("kruskal-wallis group %q", s.Label().String()), 0)
		}
	}

	total := 0
	for _, s := range samples {
		total += s.Len()
	}

	pooled := make([]float64, 0, total)
	for _, s := range samples {
		pooled = append(pooled, s.Sorted()...)
	}
	ranks := midRanks(pooled)

	// Rank sums per group, walking the pooled slice in group order.
	n := float64(total)
	sumTerm := 0.0
	offset := 0
	for _, s := range samples {
		rankSum := 0.0
		for i := 0; i < s.Len(); i++ {
			rankSum += ranks[offset+i]
		}
		sumTerm += rankSum * rankSum / float64(s.Len())
		offset += s.Len()
	}

	h := 12.0/(n*(n+1))*sumTerm - 3*(n+1)

	// Tie correction: each block of t tied observations shrinks the rank
	// variance by (t^3 - t).
	tieSum := 0.0
	for _, t := range tieBlocks(pooled) {
		tf := float64(t)
		tieSum += tf*tf*tf - tf
	}
	correction := 1 - tieSum/(n*n*n-n)
	if correction <= 0 {
		return stats.TestResult{}, core.NewInsufficientSampleError("kruskal-wallis distinct values", 1)
	}
	h /= correction

	df := len(samples) - 1
	chiDist := distuv.ChiSquared{K: float64(df)}
	pValue := 1 - chiDist.CDF(h)

	return stats.TestResult{
		TestName:         "kruskal_wallis",
		Statistic:        h,
		DegreesOfFreedom: df,
		PValue:           pValue,
	}, nil
}
