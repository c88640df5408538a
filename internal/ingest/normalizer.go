// Package ingest turns raw delimited rows into cleaned batted-ball records.
//
// Normalization applies three data-quality decisions inherited from the
// source tracking system:
//   - game dates arrive in two textual formats and are reconciled against a
//     prioritized layout list; a row matching neither is skipped and counted.
//   - the sentinel tokens "null", "0" and "0.0" mean "missing" in any
//     numeric-bearing field, so a genuine zero-distance measurement is
//     indistinguishable from an untracked one. This is lossy and deliberate.
//   - inside-the-park home runs are removed entirely, not relabeled: their
//     distance and outcome semantics are not comparable to over-the-fence
//     home runs.
package ingest

import (
	"math"
	"strconv"
	"strings"

	"github.com/jwarwick/hr-explore/domain/batted"
)

// insideTheParkMarker is the description substring that disqualifies a home
// run from the comparison.
const insideTheParkMarker = "inside-the-park"

// sentinelTokens are the literal strings the source system writes where a
// value was not tracked.
var sentinelTokens = map[string]bool{
	"null": true,
	"0":    true,
	"0.0":  true,
}

// Report summarizes row-level outcomes of one Normalize call. Row errors
// are skip-and-count, never fatal to the batch.
type Report struct {
	RowsIn           int
	RecordsOut       int
	MalformedDates   int
	MissingFields    int
	InsideTheParkHRs int
}

// Dropped returns the total rows excluded during normalization.
func (r Report) Dropped() int {
	return r.RowsIn - r.RecordsOut
}

// Normalizer parses raw rows into Records.
type Normalizer struct{}

// NewNormalizer creates a normalizer with the standard cleaning policy.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize converts raw rows to cleaned records. Output ordering follows
// input ordering but nothing downstream depends on it.
func (n *Normalizer) Normalize(rows []batted.RawRow) ([]batted.Record, Report) {
	report := Report{RowsIn: len(rows)}
	records := make([]batted.Record, 0, len(rows))

	for _, row := range rows {
		rec, ok := n.normalizeRow(row, &report)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	report.RecordsOut = len(records)
	return records, report
}

// normalizeRow applies the full cleaning policy to one row.
func (n *Normalizer) normalizeRow(row batted.RawRow, report *Report) (batted.Record, bool) {
	rawDate, ok := row[batted.FieldGameDate]
	if !ok {
		report.MissingFields++
		return batted.Record{}, false
	}
	rawYear, ok := row[batted.FieldGameYear]
	if !ok {
		report.MissingFields++
		return batted.Record{}, false
	}

	date, err := parseGameDate(strings.TrimSpace(rawDate))
	if err != nil {
		report.MalformedDates++
		return batted.Record{}, false
	}

	year, err := strconv.Atoi(strings.TrimSpace(rawYear))
	if err != nil {
		report.MissingFields++
		return batted.Record{}, false
	}

	description := row[batted.FieldDescription]
	if strings.Contains(description, insideTheParkMarker) {
		report.InsideTheParkHRs++
		return batted.Record{}, false
	}

	return batted.Record{
		Date:        date,
		SeasonYear:  year,
		EventType:   parseEventType(row[batted.FieldEvents]),
		Description: description,
		HitDistance: parseDistance(row[batted.FieldHitDistance]),
	}, true
}

// parseEventType maps the raw outcome text, keeping non-curated outcomes
// as-is; only the missing sentinels collapse to unknown.
func parseEventType(raw string) batted.EventType {
	trimmed := strings.TrimSpace(raw)
	if isMissing(trimmed) {
		return batted.EventUnknown
	}
	return batted.EventType(trimmed)
}

// parseDistance normalizes the tracked distance. Sentinels and anything
// that is not a positive finite number become missing, never zero.
func parseDistance(raw string) *float64 {
	trimmed := strings.TrimSpace(raw)
	if isMissing(trimmed) {
		return nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// isMissing is the shared missing-value predicate for raw field values.
func isMissing(raw string) bool {
	return raw == "" || sentinelTokens[raw]
}
