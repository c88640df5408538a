// Package testkit generates seeded synthetic batted-ball datasets for
// tests and for exercising the pipeline without real tracking data.
package testkit

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jwarwick/hr-explore/domain/batted"
)

// GeneratorConfig configures the synthetic batted-ball generator.
// Seed is explicit: reproducibility is threaded through, never a hidden
// process-wide global.
type GeneratorConfig struct {
	SeasonYear     int     `json:"season_year"`
	SeasonStart    string  `json:"season_start"` // YYYY-MM-DD of the season's first game
	PreCount       int     `json:"pre_count"`
	PostCount      int     `json:"post_count"`
	BreakOffset    int     `json:"break_offset"` // days after season start splitting cohorts
	MeanDistance   float64 `json:"mean_distance"`
	StdDevDistance float64 `json:"std_dev_distance"`
	PostShift      float64 `json:"post_shift"` // added to post-cohort mean; 0 = same distribution
	Seed           int64   `json:"seed"`
}

// DefaultConfig returns a same-distribution dataset around the 2016 season.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		SeasonYear:     2016,
		SeasonStart:    "2016-04-01",
		PreCount:       100,
		PostCount:      100,
		BreakOffset:    50,
		MeanDistance:   400,
		StdDevDistance: 25,
		PostShift:      0,
		Seed:           42,
	}
}

// Generator produces synthetic home-run records and raw rows.
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a generator with the given config and its own
// deterministic random source.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Records generates batted-ball records for both cohorts: PreCount home
// runs dated on or before the breakpoint and PostCount after it, with
// home-run distances drawn from the configured normal distribution (post
// mean shifted by PostShift). Each home run is accompanied by a single and
// a field out so contingency tables built from the output have multiple
// outcome rows; singles occasionally lack a tracked distance, matching the
// source system.
func (g *Generator) Records() ([]batted.Record, error) {
	start, err := time.Parse("2006-01-02", g.config.SeasonStart)
	if err != nil {
		return nil, fmt.Errorf("invalid season start: %w", err)
	}
	breakpoint := start.AddDate(0, 0, g.config.BreakOffset)

	records := make([]batted.Record, 0, 3*(g.config.PreCount+g.config.PostCount))

	for i := 0; i < g.config.PreCount; i++ {
		// Offset 0..BreakOffset keeps the date on the pre side (inclusive).
		date := start.AddDate(0, 0, g.rng.Intn(g.config.BreakOffset+1))
		records = append(records, g.cohortRecords(date, g.config.MeanDistance)...)
	}
	for i := 0; i < g.config.PostCount; i++ {
		date := breakpoint.AddDate(0, 0, 1+g.rng.Intn(90))
		records = append(records, g.cohortRecords(date, g.config.MeanDistance+g.config.PostShift)...)
	}

	return records, nil
}

// cohortRecords emits one home run plus supporting outcomes on one date.
func (g *Generator) cohortRecords(date time.Time, hrMean float64) []batted.Record {
	out := []batted.Record{
		g.record(date, batted.EventHomeRun, "hits a home run to deep center field", g.distance(hrMean)),
		g.record(date, batted.EventFieldOut, "flies out to center field", g.distance(250)),
	}

	single := g.record(date, batted.EventSingle, "singles on a line drive", g.distance(150))
	if g.rng.Float64() < 0.3 {
		single.HitDistance = nil // untracked, as older seasons often are
	}
	out = append(out, single)

	return out
}

func (g *Generator) record(date time.Time, event batted.EventType, des string, dist *float64) batted.Record {
	return batted.Record{
		Date:        date,
		SeasonYear:  g.config.SeasonYear,
		EventType:   event,
		Description: des,
		HitDistance: dist,
	}
}

func (g *Generator) distance(mean float64) *float64 {
	dist := mean + g.rng.NormFloat64()*g.config.StdDevDistance
	if dist < 1 {
		dist = 1
	}
	return &dist
}

// RawRows generates unparsed rows from Records, alternating the two
// accepted date formats so ingestion's reconciliation path is exercised.
func (g *Generator) RawRows() ([]batted.RawRow, error) {
	records, err := g.Records()
	if err != nil {
		return nil, err
	}

	rows := make([]batted.RawRow, 0, len(records))
	for i := range records {
		r := &records[i]
		dateStr := r.Date.Format("2006-01-02")
		if i%2 == 1 {
			dateStr = r.Date.Format("01/02/2006")
		}
		distStr := "null"
		if r.HasDistance() {
			distStr = fmt.Sprintf("%.1f", r.Distance())
		}
		rows = append(rows, batted.RawRow{
			batted.FieldGameDate:    dateStr,
			batted.FieldGameYear:    fmt.Sprintf("%d", r.SeasonYear),
			batted.FieldDescription: r.Description,
			batted.FieldHitDistance: distStr,
			batted.FieldEvents:      string(r.EventType),
		})
	}
	return rows, nil
}
