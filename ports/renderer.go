package ports

import "github.com/jwarwick/hr-explore/domain/run"

// ReportRenderer turns a completed run into a presentation artifact
// (markdown, HTML, workbook bytes). Renderers consume the run read-only.
type ReportRenderer interface {
	Render(r *run.AnalysisRun) ([]byte, error)
}
