package app

import (
	"context"
	"fmt"

	"github.com/jwarwick/hr-explore/domain/batted"
	domainrun "github.com/jwarwick/hr-explore/domain/run"
	"github.com/jwarwick/hr-explore/domain/stats"
	"github.com/jwarwick/hr-explore/internal"
	"github.com/jwarwick/hr-explore/internal/analysis"
	"github.com/jwarwick/hr-explore/internal/ingest"
	"github.com/jwarwick/hr-explore/internal/segment"
	"github.com/jwarwick/hr-explore/ports"
)

// AnalysisService orchestrates the batch pipeline: ingestion, temporal
// segmentation, then the contingency-table and distance-distribution
// comparisons. The pipeline is sequential over in-memory data; each step
// consumes the previous step's output in a fixed dependency order.
type AnalysisService struct {
	reader     ports.RowReader
	repository ports.RunRepository // optional; nil disables persistence
	normalizer *ingest.Normalizer
	logger     *internal.Logger
}

// NewAnalysisService creates the pipeline service. repository may be nil.
func NewAnalysisService(reader ports.RowReader, repository ports.RunRepository, logger *internal.Logger) *AnalysisService {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	return &AnalysisService{
		reader:     reader,
		repository: repository,
		normalizer: ingest.NewNormalizer(),
		logger:     logger,
	}
}

// Run executes one complete analysis and returns its manifest. Row-level
// ingestion problems are counted and reported; pipeline-level failures
// (undefined breakpoint, insufficient samples) abort with step context.
func (s *AnalysisService) Run(ctx context.Context, params domainrun.Params) (*domainrun.AnalysisRun, error) {
	rows, err := s.reader.ReadRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading input rows: %w", err)
	}

	_, result, err := s.Analyze(rows, params)
	if err != nil {
		return nil, err
	}

	if s.repository != nil {
		if err := s.repository.Save(ctx, result); err != nil {
			return nil, fmt.Errorf("persisting run %s: %w", result.ID, err)
		}
		s.logger.Info("persisted analysis run %s", result.ID)
	}

	return result, nil
}

// Analyze runs the pipeline over already-loaded rows, returning the
// segmented records (for plotting collaborators) alongside the run
// manifest.
func (s *AnalysisService) Analyze(rows []batted.RawRow, params domainrun.Params) ([]batted.Record, *domainrun.AnalysisRun, error) {
	result := domainrun.NewAnalysisRun(params)

	records, report := s.normalizer.Normalize(rows)
	result.Ingest = domainrun.IngestReport{
		RowsIn:           report.RowsIn,
		RecordsOut:       report.RecordsOut,
		MalformedDates:   report.MalformedDates,
		MissingFields:    report.MissingFields,
		InsideTheParkHRs: report.InsideTheParkHRs,
	}
	s.logger.Info("normalized %d/%d rows (%d malformed dates, %d missing fields, %d inside-the-park)",
		report.RecordsOut, report.RowsIn, report.MalformedDates, report.MissingFields, report.InsideTheParkHRs)

	breakpoint, err := segment.Breakpoint(records, params.TargetYear, params.DayOffset)
	if err != nil {
		return nil, nil, fmt.Errorf("segmentation: %w", err)
	}
	result.Breakpoint = breakpoint
	segment.Apply(records, breakpoint)
	s.logger.Info("breakpoint %s (season %d + %d days)", breakpoint.Format("2006-01-02"), params.TargetYear, params.DayOffset)

	result.Table = stats.NewContingencyTable(records)
	result.TableGrid = result.Table.Grid()

	chiRes, err := analysis.ChiSquareIndependence(result.Table)
	if err != nil {
		return nil, nil, fmt.Errorf("chi-squared independence test: %w", err)
	}
	result.ChiSquare = chiRes
	for _, w := range chiRes.Warnings {
		s.logger.Warn("chi-squared: %s", w)
	}

	grouped := segment.HomeRunDistanceSamples(records)
	pre := stats.NewDistributionSample(batted.SegmentPre, grouped[batted.SegmentPre])
	post := stats.NewDistributionSample(batted.SegmentPost, grouped[batted.SegmentPost])

	kwRes, err := analysis.KruskalWallis([]stats.DistributionSample{pre, post})
	if err != nil {
		return nil, nil, fmt.Errorf("kruskal-wallis test on home-run distances: %w", err)
	}
	result.Kruskal = kwRes

	pairs, err := analysis.PairedQuantiles(pre, post, params.QQResolution)
	if err != nil {
		return nil, nil, fmt.Errorf("paired quantiles on home-run distances: %w", err)
	}
	result.Quantiles = pairs

	for _, sample := range []stats.DistributionSample{pre, post} {
		summary, err := analysis.Summarize(sample)
		if err != nil {
			return nil, nil, fmt.Errorf("summary for %q distances: %w", sample.Label().String(), err)
		}
		result.Summaries = append(result.Summaries, summary)
	}

	s.logger.Info("chi-squared stat=%.4f df=%d p=%.4g; kruskal-wallis H=%.4f df=%d p=%.4g",
		chiRes.Statistic, chiRes.DegreesOfFreedom, chiRes.PValue,
		kwRes.Statistic, kwRes.DegreesOfFreedom, kwRes.PValue)

	return records, result, nil
}
