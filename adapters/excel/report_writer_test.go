package excel

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jwarwick/hr-explore/domain/batted"
	"github.com/jwarwick/hr-explore/domain/run"
	"github.com/jwarwick/hr-explore/domain/stats"
)

func fixtureRun() *run.AnalysisRun {
	a := run.NewAnalysisRun(run.Params{TargetYear: 2016, DayOffset: 50, Alpha: 0.05})
	a.Breakpoint = time.Date(2016, 5, 21, 0, 0, 0, 0, time.UTC)

	d := 412.5
	a.Table = stats.NewContingencyTable([]batted.Record{
		{EventType: batted.EventHomeRun, Segment: batted.SegmentPre, HitDistance: &d},
		{EventType: batted.EventHomeRun, Segment: batted.SegmentPost, HitDistance: &d},
		{EventType: batted.EventFieldOut, Segment: batted.SegmentPre},
	})
	a.ChiSquare = stats.TestResult{TestName: "chi_square_independence", Statistic: 1.2, DegreesOfFreedom: 1, PValue: 0.27}
	a.Kruskal = stats.TestResult{TestName: "kruskal_wallis", Statistic: 0.3, DegreesOfFreedom: 1, PValue: 0.58}
	a.Quantiles = []stats.QuantilePair{{Probability: 0.5, QuantileA: 400, QuantileB: 405}}
	a.Summaries = []stats.SampleSummary{{Segment: batted.SegmentPre, Label: "pre", N: 2, Mean: 410}}
	return a
}

func TestWriteFile_WorkbookContainsAllSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.xlsx")

	if err := NewReportWriter().WriteFile(fixtureRun(), path); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := map[string]bool{}
	for _, name := range f.GetSheetList() {
		sheets[name] = true
	}
	for _, want := range []string{sheetTests, sheetTable, sheetQuantiles, sheetSummaries} {
		if !sheets[want] {
			t.Fatalf("workbook missing sheet %q (have %v)", want, f.GetSheetList())
		}
	}
	if sheets["Sheet1"] {
		t.Fatalf("default sheet must be removed")
	}
}

func TestWriteFile_TestsSheetCarriesRunParameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.xlsx")
	a := fixtureRun()

	if err := NewReportWriter().WriteFile(a, path); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	id, err := f.GetCellValue(sheetTests, "B1")
	if err != nil {
		t.Fatalf("read run id: %v", err)
	}
	if id != a.ID.String() {
		t.Fatalf("expected run id %q, got %q", a.ID.String(), id)
	}

	bp, err := f.GetCellValue(sheetTests, "B2")
	if err != nil {
		t.Fatalf("read breakpoint: %v", err)
	}
	if bp != "2016-05-21" {
		t.Fatalf("expected breakpoint 2016-05-21, got %q", bp)
	}
}

func TestWriteFile_ContingencySheetMatchesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.xlsx")
	a := fixtureRun()

	if err := NewReportWriter().WriteFile(a, path); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetTable)
	if err != nil {
		t.Fatalf("read contingency sheet: %v", err)
	}
	// Header plus one row per curated outcome.
	if len(rows) != 1+len(a.Table.Rows()) {
		t.Fatalf("expected %d rows, got %d", 1+len(a.Table.Rows()), len(rows))
	}
	if rows[0][0] != "event_type" || rows[0][1] != "pre" || rows[0][2] != "post" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
}
