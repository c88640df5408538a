// Package segment splits cleaned records into pre/post cohorts around a
// breakpoint anchored to a season's first recorded game.
package segment

import (
	"time"

	"github.com/jwarwick/hr-explore/domain/batted"
	"github.com/jwarwick/hr-explore/domain/core"
)

// Breakpoint computes the cohort split date: the earliest date among
// records of targetYear, plus dayOffset calendar days. Anchoring to the
// season's first day rather than a wall-clock date keeps the analysis
// reproducible across any dataset containing that season.
//
// A target year with zero records leaves the breakpoint undefined; that is
// a loud failure since everything downstream depends on it.
func Breakpoint(records []batted.Record, targetYear, dayOffset int) (time.Time, error) {
	var earliest time.Time
	found := false

	for i := range records {
		r := &records[i]
		if r.SeasonYear != targetYear {
			continue
		}
		if !found || r.Date.Before(earliest) {
			earliest = r.Date
			found = true
		}
	}

	if !found {
		return time.Time{}, core.NewUndefinedBreakpointError(targetYear)
	}

	return earliest.AddDate(0, 0, dayOffset), nil
}

// Apply labels every record: pre when date <= breakpoint (inclusive on the
// pre side), post otherwise. The label is a pure function of date and
// breakpoint and never changes once assigned.
func Apply(records []batted.Record, breakpoint time.Time) {
	for i := range records {
		if !records[i].Date.After(breakpoint) {
			records[i].Segment = batted.SegmentPre
		} else {
			records[i].Segment = batted.SegmentPost
		}
	}
}

// DistanceSamples collects the tracked hit distances per cohort, in the
// defined segment order.
func DistanceSamples(records []batted.Record) map[batted.Segment][]float64 {
	samples := make(map[batted.Segment][]float64, len(batted.Segments))
	for i := range records {
		r := &records[i]
		if !r.Segment.Assigned() || !r.HasDistance() {
			continue
		}
		samples[r.Segment] = append(samples[r.Segment], r.Distance())
	}
	return samples
}

// HomeRunDistanceSamples is DistanceSamples restricted to over-the-fence
// home runs, the primary comparison of the study.
func HomeRunDistanceSamples(records []batted.Record) map[batted.Segment][]float64 {
	samples := make(map[batted.Segment][]float64, len(batted.Segments))
	for i := range records {
		r := &records[i]
		if r.EventType != batted.EventHomeRun || !r.Segment.Assigned() || !r.HasDistance() {
			continue
		}
		samples[r.Segment] = append(samples[r.Segment], r.Distance())
	}
	return samples
}
