// Package report renders a completed analysis run for human consumption.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/jwarwick/hr-explore/domain/run"
)

// MarkdownRenderer produces a markdown summary of a run. It implements
// ports.ReportRenderer.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a markdown renderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render produces the markdown report.
func (r *MarkdownRenderer) Render(a *run.AnalysisRun) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("nil analysis run")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "# Equipment-change analysis run %s\n\n", a.ID)
	fmt.Fprintf(&b, "Breakpoint: **%s** (season %d first game + %d days)\n\n",
		a.Breakpoint.Format("2006-01-02"), a.Params.TargetYear, a.Params.DayOffset)

	fmt.Fprintf(&b, "## Ingestion\n\n")
	fmt.Fprintf(&b, "- rows in: %d\n- records out: %d\n- malformed dates: %d\n- missing fields: %d\n- inside-the-park HRs excluded: %d\n\n",
		a.Ingest.RowsIn, a.Ingest.RecordsOut, a.Ingest.MalformedDates, a.Ingest.MissingFields, a.Ingest.InsideTheParkHRs)

	fmt.Fprintf(&b, "## Outcome counts by cohort\n\n```\n%s```\n\n", a.TableGrid)

	fmt.Fprintf(&b, "## Hypothesis tests\n\n")
	fmt.Fprintf(&b, "| test | statistic | df | p-value |\n|---|---|---|---|\n")
	fmt.Fprintf(&b, "| chi-squared independence | %.4f | %d | %.4g |\n",
		a.ChiSquare.Statistic, a.ChiSquare.DegreesOfFreedom, a.ChiSquare.PValue)
	fmt.Fprintf(&b, "| Kruskal-Wallis (HR distance) | %.4f | %d | %.4g |\n\n",
		a.Kruskal.Statistic, a.Kruskal.DegreesOfFreedom, a.Kruskal.PValue)

	for _, w := range a.ChiSquare.Warnings {
		fmt.Fprintf(&b, "> caveat: %s\n\n", w)
	}

	// Narrative interpretation against alpha lives here, in reporting,
	// never inside the test engine.
	fmt.Fprintf(&b, "At alpha = %g: chi-squared %s independence; Kruskal-Wallis %s a common distance distribution.\n\n",
		a.Params.Alpha,
		rejectionPhrase(a.ChiSquare.PValue, a.Params.Alpha),
		rejectionPhrase(a.Kruskal.PValue, a.Params.Alpha))

	fmt.Fprintf(&b, "## Distance summaries\n\n")
	fmt.Fprintf(&b, "| cohort | n | mean | std dev | median | q25 | q75 | min | max |\n|---|---|---|---|---|---|---|---|---|\n")
	for _, s := range a.Summaries {
		fmt.Fprintf(&b, "| %s | %d | %.1f | %.1f | %.1f | %.1f | %.1f | %.1f | %.1f |\n",
			s.Label, s.N, s.Mean, s.StdDev, s.Median, s.Q25, s.Q75, s.Min, s.Max)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Paired quantiles (pre vs post)\n\n")
	fmt.Fprintf(&b, "| p | pre | post |\n|---|---|---|\n")
	for _, q := range a.Quantiles {
		fmt.Fprintf(&b, "| %.3f | %.1f | %.1f |\n", q.Probability, q.QuantileA, q.QuantileB)
	}

	return []byte(b.String()), nil
}

// rejectionPhrase words the caller-level decision for the narrative.
func rejectionPhrase(p, alpha float64) string {
	if p < alpha {
		return "rejects"
	}
	return "does not reject"
}

// HTMLRenderer wraps MarkdownRenderer and converts the report to HTML.
type HTMLRenderer struct {
	md *MarkdownRenderer
}

// NewHTMLRenderer creates an HTML renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{md: NewMarkdownRenderer()}
}

// Render produces the HTML report.
func (r *HTMLRenderer) Render(a *run.AnalysisRun) ([]byte, error) {
	source, err := r.md.Render(a)
	if err != nil {
		return nil, err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse(source)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer), nil
}
