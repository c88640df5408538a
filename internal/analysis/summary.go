package analysis

import (
	montana "github.com/montanaflynn/stats"

	"github.com/jwarwick/hr-explore/domain/core"
	"github.com/jwarwick/hr-explore/domain/stats"
)

// Summarize computes descriptive statistics for one distance sample, for
// the reporting collaborator's tables and boxplots.
func Summarize(sample stats.DistributionSample) (stats.SampleSummary, error) {
	if sample.Len() < 2 {
		return stats.SampleSummary{}, core.NewInsufficientSampleError(
			"summary sample "+sample.Label().String(), sample.Len())
	}

	data := sample.Values()

	mean, err := montana.Mean(data)
	if err != nil {
		return stats.SampleSummary{}, err
	}
	stdDev, err := montana.StandardDeviation(data)
	if err != nil {
		return stats.SampleSummary{}, err
	}
	min, err := montana.Min(data)
	if err != nil {
		return stats.SampleSummary{}, err
	}
	max, err := montana.Max(data)
	if err != nil {
		return stats.SampleSummary{}, err
	}
	median, err := montana.Median(data)
	if err != nil {
		return stats.SampleSummary{}, err
	}
	q25, err := montana.Percentile(data, 25)
	if err != nil {
		return stats.SampleSummary{}, err
	}
	q75, err := montana.Percentile(data, 75)
	if err != nil {
		return stats.SampleSummary{}, err
	}

	return stats.SampleSummary{
		Segment: sample.Label(),
		Label:   sample.Label().String(),
		N:       sample.Len(),
		Mean:    mean,
		StdDev:  stdDev,
		Min:     min,
		Max:     max,
		Median:  median,
		Q25:     q25,
		Q75:     q75,
	}, nil
}
