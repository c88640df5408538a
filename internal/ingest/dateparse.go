package ingest

import (
	"time"

	"github.com/jwarwick/hr-explore/domain/core"
)

// dateLayouts are the accepted textual date formats, tried in priority
// order. The source data mixes ISO dates with US-style dates depending on
// the season the file was exported from.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
}

// parseGameDate reconciles the two accepted date formats. A string matching
// neither is a data-quality failure for that row, never silently coerced to
// a default date.
func parseGameDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, raw); err == nil {
			return d, nil
		}
	}
	return time.Time{}, core.NewMalformedDateError(raw)
}
