package analysis

import (
	"fmt"
	"math"

	"github.com/jwarwick/hr-explore/domain/core"
	"github.com/jwarwick/hr-explore/domain/stats"
)

// PairedQuantiles builds a quantile-matched pair sequence from two possibly
// different-length samples, for QQ-style comparison against the identity
// line. This prepares comparable data only; it performs no inference.
//
// A shared set of probability points is generated - resolution points when
// resolution > 1, otherwise max(len(a), len(b)) - spanning [0, 1] so both
// endpoints land on the extreme order statistics. Each sample's empirical
// quantile is computed independently per point, with linear interpolation
// between order statistics for non-integral ranks.
func PairedQuantiles(a, b stats.DistributionSample, resolution int) ([]stats.QuantilePair, error) {
	if a.Len() < 2 {
		return nil, core.NewInsufficientSampleError(fmt.Sprintf("quantile sample %q", a.Label().String()), a.Len())
	}
	if b.Len() < 2 {
		return nil, core.NewInsufficientSampleError(fmt.Sprintf("quantile sample %q", b.Label().String()), b.Len())
	}

	m := resolution
	if m < 2 {
		m = a.Len()
		if b.Len() > m {
			m = b.Len()
		}
	}

	pairs := make([]stats.QuantilePair, m)
	for i := 0; i < m; i++ {
		p := float64(i) / float64(m-1)
		pairs[i] = stats.QuantilePair{
			Probability: p,
			QuantileA:   quantileSorted(a.Sorted(), p),
			QuantileB:   quantileSorted(b.Sorted(), p),
		}
	}
	return pairs, nil
}

// quantileSorted computes the empirical quantile of an ascending sample at
// probability p, interpolating linearly between adjacent order statistics.
func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
