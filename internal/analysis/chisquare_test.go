package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/jwarwick/hr-explore/domain/batted"
	"github.com/jwarwick/hr-explore/domain/core"
	"github.com/jwarwick/hr-explore/domain/stats"
)

// tableOf builds a contingency table with the given per-event {pre, post}
// counts by synthesizing segmented records.
func tableOf(t *testing.T, counts map[batted.EventType][2]int) stats.ContingencyTable {
	t.Helper()

	var records []batted.Record
	for event, pair := range counts {
		for i := 0; i < pair[0]; i++ {
			records = append(records, batted.Record{EventType: event, Segment: batted.SegmentPre})
		}
		for i := 0; i < pair[1]; i++ {
			records = append(records, batted.Record{EventType: event, Segment: batted.SegmentPost})
		}
	}
	return stats.NewContingencyTable(records)
}

// Gold standard 2x2: [[30,10],[20,40]] gives the textbook Pearson result
// chi2 = 50/3 with df 1 (hand check: expected counts 20/20/30/30, so
// 100/20 + 100/20 + 100/30 + 100/30), p ~= 4.46e-5. Matches
// scipy.stats.chi2_contingency with correction=False.
func TestChiSquare_GoldStandard2x2(t *testing.T) {
	table := tableOf(t, map[batted.EventType][2]int{
		batted.EventHomeRun:  {30, 10},
		batted.EventFieldOut: {20, 40},
	})

	res, err := ChiSquareIndependence(table)
	if err != nil {
		t.Fatalf("chi-square: %v", err)
	}

	wantStat := 50.0 / 3.0
	if rel := math.Abs(res.Statistic-wantStat) / wantStat; rel > 1e-9 {
		t.Fatalf("expected statistic %.6f, got %.6f (rel err %.2g)", wantStat, res.Statistic, rel)
	}
	if res.DegreesOfFreedom != 1 {
		t.Fatalf("expected df 1, got %d", res.DegreesOfFreedom)
	}
	if math.Abs(res.PValue-4.46e-5) > 2e-6 {
		t.Fatalf("expected p ~= 4.46e-5, got %.6g", res.PValue)
	}
	if res.MinExpected != 20 {
		t.Fatalf("expected min expected count 20, got %g", res.MinExpected)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestChiSquare_IndependentTableHasHighP(t *testing.T) {
	// Perfectly proportional rows: statistic 0, p 1.
	table := tableOf(t, map[batted.EventType][2]int{
		batted.EventHomeRun:  {30, 30},
		batted.EventFieldOut: {50, 50},
		batted.EventSingle:   {80, 80},
	})

	res, err := ChiSquareIndependence(table)
	if err != nil {
		t.Fatalf("chi-square: %v", err)
	}
	if res.Statistic > 1e-12 {
		t.Fatalf("expected statistic 0 for proportional table, got %g", res.Statistic)
	}
	if res.DegreesOfFreedom != 2 {
		t.Fatalf("expected df 2 for 3x2 table, got %d", res.DegreesOfFreedom)
	}
	if res.PValue < 0.999 {
		t.Fatalf("expected p ~= 1, got %g", res.PValue)
	}
}

func TestChiSquare_EmptyRowsExcludedFromDF(t *testing.T) {
	// Only two of the five curated outcomes appear; df must reflect the
	// 2x2 table that actually carries counts.
	table := tableOf(t, map[batted.EventType][2]int{
		batted.EventHomeRun: {12, 8},
		batted.EventDouble:  {7, 13},
	})

	res, err := ChiSquareIndependence(table)
	if err != nil {
		t.Fatalf("chi-square: %v", err)
	}
	if res.DegreesOfFreedom != 1 {
		t.Fatalf("expected df 1, got %d", res.DegreesOfFreedom)
	}
}

func TestChiSquare_LowExpectedCountWarns(t *testing.T) {
	table := tableOf(t, map[batted.EventType][2]int{
		batted.EventHomeRun: {2, 1},
		batted.EventTriple:  {1, 3},
	})

	res, err := ChiSquareIndependence(table)
	if err != nil {
		t.Fatalf("chi-square: %v", err)
	}
	if len(res.Warnings) == 0 {
		t.Fatalf("expected low-expected-count warning, got none (min expected %g)", res.MinExpected)
	}
	if res.MinExpected >= 5 {
		t.Fatalf("expected min expected < 5, got %g", res.MinExpected)
	}
}

func TestChiSquare_SingleRowIsInsufficient(t *testing.T) {
	table := tableOf(t, map[batted.EventType][2]int{
		batted.EventHomeRun: {30, 40},
	})

	_, err := ChiSquareIndependence(table)
	if !errors.Is(err, core.ErrInsufficientSample) {
		t.Fatalf("expected ErrInsufficientSample, got %v", err)
	}
}
