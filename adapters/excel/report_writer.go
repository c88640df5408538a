// Package excel exports a completed analysis run as an xlsx workbook for
// downstream charting.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jwarwick/hr-explore/domain/run"
)

// Sheet names in the exported workbook.
const (
	sheetTests     = "Tests"
	sheetTable     = "Contingency"
	sheetQuantiles = "Quantiles"
	sheetSummaries = "Summaries"
)

// ReportWriter writes run artifacts to an Excel workbook.
type ReportWriter struct{}

// NewReportWriter creates a workbook writer.
func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// WriteFile writes the full workbook to path.
func (w *ReportWriter) WriteFile(a *run.AnalysisRun, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeTests(f, a); err != nil {
		return err
	}
	if err := w.writeTable(f, a); err != nil {
		return err
	}
	if err := w.writeQuantiles(f, a); err != nil {
		return err
	}
	if err := w.writeSummaries(f, a); err != nil {
		return err
	}

	// Drop the default sheet so the workbook opens on the results.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *ReportWriter) writeTests(f *excelize.File, a *run.AnalysisRun) error {
	if _, err := f.NewSheet(sheetTests); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheetTests, err)
	}

	rows := [][]interface{}{
		{"run_id", a.ID.String()},
		{"breakpoint", a.Breakpoint.Format("2006-01-02")},
		{"target_year", a.Params.TargetYear},
		{"day_offset", a.Params.DayOffset},
		{"alpha", a.Params.Alpha},
		{},
		{"test", "statistic", "df", "p_value"},
		{a.ChiSquare.TestName, a.ChiSquare.Statistic, a.ChiSquare.DegreesOfFreedom, a.ChiSquare.PValue},
		{a.Kruskal.TestName, a.Kruskal.Statistic, a.Kruskal.DegreesOfFreedom, a.Kruskal.PValue},
	}
	return writeRows(f, sheetTests, rows)
}

func (w *ReportWriter) writeTable(f *excelize.File, a *run.AnalysisRun) error {
	if _, err := f.NewSheet(sheetTable); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheetTable, err)
	}

	rows := [][]interface{}{{"event_type"}}
	for _, seg := range a.Table.Cols() {
		rows[0] = append(rows[0], seg.String())
	}
	for _, et := range a.Table.Rows() {
		row := []interface{}{string(et)}
		for _, seg := range a.Table.Cols() {
			row = append(row, a.Table.Count(et, seg))
		}
		rows = append(rows, row)
	}
	return writeRows(f, sheetTable, rows)
}

func (w *ReportWriter) writeQuantiles(f *excelize.File, a *run.AnalysisRun) error {
	if _, err := f.NewSheet(sheetQuantiles); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheetQuantiles, err)
	}

	rows := [][]interface{}{{"probability", "pre_quantile", "post_quantile"}}
	for _, q := range a.Quantiles {
		rows = append(rows, []interface{}{q.Probability, q.QuantileA, q.QuantileB})
	}
	return writeRows(f, sheetQuantiles, rows)
}

func (w *ReportWriter) writeSummaries(f *excelize.File, a *run.AnalysisRun) error {
	if _, err := f.NewSheet(sheetSummaries); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheetSummaries, err)
	}

	rows := [][]interface{}{{"cohort", "n", "mean", "std_dev", "min", "max", "median", "q25", "q75"}}
	for _, s := range a.Summaries {
		rows = append(rows, []interface{}{s.Label, s.N, s.Mean, s.StdDev, s.Min, s.Max, s.Median, s.Q25, s.Q75})
	}
	return writeRows(f, sheetSummaries, rows)
}

// writeRows streams rows into a sheet starting at A1.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
