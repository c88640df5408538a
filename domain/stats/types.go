package stats

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jwarwick/hr-explore/domain/batted"
)

// TestResult contains the output of one hypothesis test.
// INVARIANTS:
// - PValue always present (0.0 to 1.0)
// - Statistic is the raw test statistic, never a decision: interpreting it
//   against a significance level is a caller-level concern.
type TestResult struct {
	TestName         string  `json:"test_name"`
	Statistic        float64 `json:"statistic"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
	PValue           float64 `json:"p_value"`

	// MinExpected is the smallest expected cell count for tests with an
	// expected-frequency validity caveat (chi-squared). Zero otherwise.
	MinExpected float64 `json:"min_expected,omitempty"`

	// Warnings carries validity caveats for the caller to inspect; the
	// engine never rejects an input over them.
	Warnings []string `json:"warnings,omitempty"`
}

// QuantilePair is one matched pair of empirical quantiles from two samples,
// suitable for QQ-style comparison against the identity line.
type QuantilePair struct {
	Probability float64 `json:"probability"`
	QuantileA   float64 `json:"quantile_a"`
	QuantileB   float64 `json:"quantile_b"`
}

// DistributionSample is the ordered hit-distance sample for one segment.
// Built fresh per analysis and never mutated afterwards.
type DistributionSample struct {
	label  batted.Segment
	values []float64
}

// NewDistributionSample copies and sorts values for the given segment.
func NewDistributionSample(label batted.Segment, values []float64) DistributionSample {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return DistributionSample{label: label, values: sorted}
}

// Label returns the segment this sample belongs to.
func (s DistributionSample) Label() batted.Segment { return s.label }

// Len returns the observation count.
func (s DistributionSample) Len() int { return len(s.values) }

// Values returns a copy of the sorted observations.
func (s DistributionSample) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// Sorted returns the underlying sorted observations without copying.
// Callers must not mutate the returned slice.
func (s DistributionSample) Sorted() []float64 { return s.values }

// ContingencyTable counts event_type x segment, rows = the curated outcome
// set, columns = {pre, post}. Immutable once constructed.
type ContingencyTable struct {
	rows   []batted.EventType
	cols   []batted.Segment
	counts map[batted.EventType]map[batted.Segment]int
	total  int
}

// NewContingencyTable builds the table from segmented records. Records with
// an unknown event type or an unassigned segment do not contribute, so the
// cell sum equals the number of records with both labels known.
func NewContingencyTable(records []batted.Record) ContingencyTable {
	counts := make(map[batted.EventType]map[batted.Segment]int, len(batted.CuratedEventTypes))
	for _, et := range batted.CuratedEventTypes {
		counts[et] = make(map[batted.Segment]int, len(batted.Segments))
	}

	total := 0
	for i := range records {
		r := &records[i]
		if !r.EventType.Curated() || r.EventType == batted.EventUnknown || !r.Segment.Assigned() {
			continue
		}
		counts[r.EventType][r.Segment]++
		total++
	}

	return ContingencyTable{
		rows:   batted.CuratedEventTypes,
		cols:   batted.Segments,
		counts: counts,
		total:  total,
	}
}

// Rows returns the row labels in presentation order.
func (t ContingencyTable) Rows() []batted.EventType { return t.rows }

// Cols returns the column labels in their defined order.
func (t ContingencyTable) Cols() []batted.Segment { return t.cols }

// Count returns the observed count for one cell.
func (t ContingencyTable) Count(event batted.EventType, seg batted.Segment) int {
	return t.counts[event][seg]
}

// RowTotal returns the marginal total for one event type.
func (t ContingencyTable) RowTotal(event batted.EventType) int {
	sum := 0
	for _, seg := range t.cols {
		sum += t.counts[event][seg]
	}
	return sum
}

// ColTotal returns the marginal total for one segment.
func (t ContingencyTable) ColTotal(seg batted.Segment) int {
	sum := 0
	for _, et := range t.rows {
		sum += t.counts[et][seg]
	}
	return sum
}

// GrandTotal returns the sum of all cells.
func (t ContingencyTable) GrandTotal() int { return t.total }

// Grid renders the table as a printable count grid with row and column
// labels, for the reporting collaborator.
func (t ContingencyTable) Grid() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%-12s", "event_type"))
	for _, seg := range t.cols {
		b.WriteString(fmt.Sprintf("%8s", seg.String()))
	}
	b.WriteString(fmt.Sprintf("%8s\n", "total"))

	for _, et := range t.rows {
		b.WriteString(fmt.Sprintf("%-12s", string(et)))
		for _, seg := range t.cols {
			b.WriteString(fmt.Sprintf("%8d", t.counts[et][seg]))
		}
		b.WriteString(fmt.Sprintf("%8d\n", t.RowTotal(et)))
	}

	b.WriteString(fmt.Sprintf("%-12s", "total"))
	for _, seg := range t.cols {
		b.WriteString(fmt.Sprintf("%8d", t.ColTotal(seg)))
	}
	b.WriteString(fmt.Sprintf("%8d\n", t.total))

	return b.String()
}

// SampleSummary holds descriptive statistics for one distance sample.
type SampleSummary struct {
	Segment batted.Segment `json:"-"`
	Label   string         `json:"segment"`
	N       int            `json:"n"`
	Mean    float64        `json:"mean"`
	StdDev  float64        `json:"std_dev"`
	Min     float64        `json:"min"`
	Max     float64        `json:"max"`
	Median  float64        `json:"median"`
	Q25     float64        `json:"q25"`
	Q75     float64        `json:"q75"`
}
