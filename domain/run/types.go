// Package run defines the manifest of one analysis execution: the
// parameters that make it reproducible and the results it produced.
package run

import (
	"time"

	"github.com/jwarwick/hr-explore/domain/core"
	"github.com/jwarwick/hr-explore/domain/stats"
)

// Params are the inputs that fully determine an analysis run over a fixed
// dataset. Alpha is carried for caller-level interpretation only; the test
// engine itself never consumes it.
type Params struct {
	TargetYear   int     `json:"target_year"`
	DayOffset    int     `json:"day_offset"`
	Alpha        float64 `json:"alpha"`
	QQResolution int     `json:"qq_resolution,omitempty"` // 0 = max(sample sizes)
}

// IngestReport summarizes row-level outcomes of normalization.
type IngestReport struct {
	RowsIn           int `json:"rows_in"`
	RecordsOut       int `json:"records_out"`
	MalformedDates   int `json:"malformed_dates"`
	MissingFields    int `json:"missing_fields"`
	InsideTheParkHRs int `json:"inside_the_park_hrs"`
}

// Dropped returns the total rows excluded during normalization.
func (r IngestReport) Dropped() int {
	return r.RowsIn - r.RecordsOut
}

// AnalysisRun is the complete artifact of one pipeline execution.
type AnalysisRun struct {
	ID         core.RunID             `json:"run_id"`
	Params     Params                 `json:"params"`
	Ingest     IngestReport           `json:"ingest"`
	Breakpoint time.Time              `json:"breakpoint"`
	Table      stats.ContingencyTable `json:"-"`
	TableGrid  string                 `json:"table_grid"`
	ChiSquare  stats.TestResult       `json:"chi_square"`
	Kruskal    stats.TestResult       `json:"kruskal_wallis"`
	Quantiles  []stats.QuantilePair   `json:"quantile_pairs"`
	Summaries  []stats.SampleSummary  `json:"summaries"`
	CreatedAt  core.Timestamp         `json:"created_at"`
}

// NewAnalysisRun allocates a run manifest with a fresh time-ordered ID.
func NewAnalysisRun(params Params) *AnalysisRun {
	return &AnalysisRun{
		ID:        core.NewID(),
		Params:    params,
		CreatedAt: core.Now(),
	}
}
