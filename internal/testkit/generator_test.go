package testkit

import (
	"testing"
	"time"

	"github.com/jwarwick/hr-explore/domain/batted"
)

func TestGenerator_SameSeedSameData(t *testing.T) {
	cfg := DefaultConfig()

	first, err := NewGenerator(cfg).Records()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := NewGenerator(cfg).Records()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Date.Equal(second[i].Date) ||
			first[i].EventType != second[i].EventType ||
			first[i].Distance() != second[i].Distance() {
			t.Fatalf("record %d differs across identically seeded runs", i)
		}
	}
}

func TestGenerator_DifferentSeedDifferentData(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	b.Seed = a.Seed + 1

	first, err := NewGenerator(a).Records()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := NewGenerator(b).Records()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	same := true
	for i := range first {
		if first[i].Distance() != second[i].Distance() {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("different seeds produced identical distances")
	}
}

func TestGenerator_DatesRespectBreakpointSides(t *testing.T) {
	cfg := DefaultConfig()
	records, err := NewGenerator(cfg).Records()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	start, err := time.Parse("2006-01-02", cfg.SeasonStart)
	if err != nil {
		t.Fatalf("season start: %v", err)
	}
	breakpoint := start.AddDate(0, 0, cfg.BreakOffset)

	pre, post := 0, 0
	for i := range records {
		if records[i].Date.After(breakpoint) {
			post++
		} else {
			pre++
		}
	}

	// Each cohort count emits a home run plus two supporting outcomes.
	if pre != 3*cfg.PreCount {
		t.Fatalf("expected %d pre-side records, got %d", 3*cfg.PreCount, pre)
	}
	if post != 3*cfg.PostCount {
		t.Fatalf("expected %d post-side records, got %d", 3*cfg.PostCount, post)
	}
}

func TestGenerator_EmitsMultipleOutcomeTypes(t *testing.T) {
	records, err := NewGenerator(DefaultConfig()).Records()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	seen := map[batted.EventType]bool{}
	for i := range records {
		seen[records[i].EventType] = true
	}
	for _, want := range []batted.EventType{batted.EventHomeRun, batted.EventFieldOut, batted.EventSingle} {
		if !seen[want] {
			t.Fatalf("expected %q in generated data", want)
		}
	}
}

func TestGenerator_HomeRunsAlwaysTracked(t *testing.T) {
	records, err := NewGenerator(DefaultConfig()).Records()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := range records {
		if records[i].EventType == batted.EventHomeRun && !records[i].HasDistance() {
			t.Fatalf("home run %d missing a distance", i)
		}
	}
}

func TestRawRows_AlternateDateFormatsRoundTrip(t *testing.T) {
	rows, err := NewGenerator(DefaultConfig()).RawRows()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	sawISO, sawUS := false, false
	for _, row := range rows {
		date := row[batted.FieldGameDate]
		if _, err := time.Parse("2006-01-02", date); err == nil {
			sawISO = true
			continue
		}
		if _, err := time.Parse("01/02/2006", date); err == nil {
			sawUS = true
			continue
		}
		t.Fatalf("date %q matches neither accepted format", date)
	}
	if !sawISO || !sawUS {
		t.Fatalf("expected both date formats in output (iso=%v us=%v)", sawISO, sawUS)
	}
}

func TestRawRows_MissingDistanceWrittenAsSentinel(t *testing.T) {
	cfg := DefaultConfig()
	rows, err := NewGenerator(cfg).RawRows()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	sentinels := 0
	for _, row := range rows {
		if row[batted.FieldHitDistance] == "null" {
			sentinels++
		}
	}
	// Singles lose their distance about 30% of the time; with 200 singles
	// at least one sentinel is effectively certain.
	if sentinels == 0 {
		t.Fatalf("expected some null distance sentinels")
	}
}

func TestGenerator_InvalidSeasonStartFails(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeasonStart = "April 1st"

	if _, err := NewGenerator(cfg).Records(); err == nil {
		t.Fatalf("expected error for invalid season start")
	}
}
