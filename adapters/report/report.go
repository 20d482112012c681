// Package report renders a test result as a markdown document, optionally
// converted to HTML for the API. The numeric core never formats anything;
// this is the one place presentation lives.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"geoks/domain/geochron"
)

// Markdown renders a comparison report. The samples are the post-ingest
// (pre-filter) samples so the summary tables describe what the caller
// actually supplied.
func Markdown(result *geochron.TestResult, x, y *geochron.Sample) (string, error) {
	var b strings.Builder

	b.WriteString("# Age distribution comparison\n\n")
	fmt.Fprintf(&b, "**Method:** %s  \n", result.Method)
	fmt.Fprintf(&b, "**Alternative:** %s  \n", result.Alternative)
	fmt.Fprintf(&b, "**Run:** %s (%s)\n\n", result.ID, result.CreatedAt)

	b.WriteString("## Result\n\n")
	fmt.Fprintf(&b, "| D | p-value | n_x | n_y | pooled n |\n")
	fmt.Fprintf(&b, "|---|---------|-----|-----|----------|\n")
	fmt.Fprintf(&b, "| %.6f | %.6f | %d | %d | %d |\n\n",
		result.Statistic, result.PValue, result.NX, result.NY, result.PooledN)

	if len(result.Winners) > 0 {
		fmt.Fprintf(&b, "Maximum discrepancy at: %s\n\n", formatValues(result.Winners))
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(&b, "> **%s**: %s\n\n", w.Code, w.Message)
	}

	if result.Filtered() {
		b.WriteString("## Xenocryst filtering\n\n")
		writeFilter(&b, result.FilterX)
		writeFilter(&b, result.FilterY)
	}

	b.WriteString("## Samples\n\n")
	if err := writeSummary(&b, x); err != nil {
		return "", err
	}
	if err := writeSummary(&b, y); err != nil {
		return "", err
	}

	return b.String(), nil
}

// HTML renders the markdown report to HTML
func HTML(result *geochron.TestResult, x, y *geochron.Sample) ([]byte, error) {
	md, err := Markdown(result, x, y)
	if err != nil {
		return nil, err
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer), nil
}

func writeFilter(b *strings.Builder, f *geochron.FilterResult) {
	if f == nil {
		return
	}
	if !f.Found() {
		fmt.Fprintf(b, "- sample %q: no xenocrysts found (threshold %.4f, sigma scale %.2f)\n", f.Label, f.Threshold, f.SigmaScale)
		return
	}
	fmt.Fprintf(b, "- sample %q: excised %s (threshold %.4f, sigma scale %.2f)\n",
		f.Label, formatValues(f.XenocrystValues()), f.Threshold, f.SigmaScale)
}

func writeSummary(b *strings.Builder, s *geochron.Sample) error {
	summary, err := s.Describe()
	if err != nil {
		return fmt.Errorf("failed to summarize sample %q: %w", s.Label, err)
	}
	fmt.Fprintf(b, "### Sample %q\n\n", s.Label)
	fmt.Fprintf(b, "| n | mean | median | min | max | std dev | max sigma |\n")
	fmt.Fprintf(b, "|---|------|--------|-----|-----|---------|-----------|\n")
	fmt.Fprintf(b, "| %d | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f |\n\n",
		summary.N, summary.Mean, summary.Median, summary.Min, summary.Max, summary.StdDev, summary.MaxSigma)
	return nil
}

func formatValues(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%.4f", v)
	}
	return strings.Join(parts, ", ")
}
