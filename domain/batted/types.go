package batted

import "time"

// RawRow is one unparsed input row keyed by header name, as delivered by a
// row reader before normalization.
type RawRow map[string]string

// Input header names consumed from raw rows.
const (
	FieldGameDate    = "game_date"
	FieldGameYear    = "game_year"
	FieldDescription = "des"
	FieldHitDistance = "hit_distance_sc"
	FieldEvents      = "events"
)

// EventType is the categorical outcome of a batted-ball event.
type EventType string

const (
	EventSingle   EventType = "single"
	EventDouble   EventType = "double"
	EventTriple   EventType = "triple"
	EventHomeRun  EventType = "home_run"
	EventFieldOut EventType = "field_out"

	// EventUnknown marks rows whose outcome was absent or outside the
	// curated set. Allowed pre-filter; excluded from contingency counts.
	EventUnknown EventType = ""
)

// CuratedEventTypes is the closed row set for contingency tables, in
// presentation order.
var CuratedEventTypes = []EventType{
	EventSingle,
	EventDouble,
	EventTriple,
	EventHomeRun,
	EventFieldOut,
}

// Curated reports whether t belongs to the closed outcome set.
func (t EventType) Curated() bool {
	for _, known := range CuratedEventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Segment is the temporal cohort label assigned by segmentation.
// It is an ordered two-value categorical: pre sorts before post, so
// downstream tables and plots present cohorts consistently rather than
// alphabetically.
type Segment int

const (
	SegmentUnassigned Segment = iota
	SegmentPre
	SegmentPost
)

// String returns the cohort label.
func (s Segment) String() string {
	switch s {
	case SegmentPre:
		return "pre"
	case SegmentPost:
		return "post"
	default:
		return "unassigned"
	}
}

// Before reports the defined total order pre < post.
func (s Segment) Before(other Segment) bool {
	return s != SegmentUnassigned && other != SegmentUnassigned && s < other
}

// Assigned reports whether segmentation has labeled this value.
func (s Segment) Assigned() bool {
	return s == SegmentPre || s == SegmentPost
}

// Segments lists the cohort labels in their defined order.
var Segments = []Segment{SegmentPre, SegmentPost}

// Record is one cleaned batted-ball event.
//
// HitDistance is nil when the measurement is missing. The source tracking
// system records untracked distances as "null", "0" or "0.0", so a genuine
// zero-distance measurement is indistinguishable from missing; that lossy
// policy is inherited deliberately and normalization maps all three
// sentinels to nil, never to zero.
type Record struct {
	Date        time.Time
	SeasonYear  int
	EventType   EventType
	Description string
	HitDistance *float64
	Segment     Segment
}

// HasDistance reports whether a tracked distance is present.
func (r *Record) HasDistance() bool {
	return r.HitDistance != nil
}

// Distance returns the tracked distance, valid only when HasDistance.
func (r *Record) Distance() float64 {
	if r.HitDistance == nil {
		return 0
	}
	return *r.HitDistance
}
