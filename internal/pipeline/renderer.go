package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/yousif-abd/openblog-sub000/internal/model"
)

// Renderer writes validation reports as JSON and Markdown
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as pretty-printed JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderMarkdown writes a human-readable Markdown report
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Citation Report: %s\n\n", report.Source)
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	s := report.Summary
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "| Total | Valid | Replaced | DOI | Dropped |\n")
	fmt.Fprintf(&b, "|-------|-------|----------|-----|--------|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n\n", s.Total, s.Valid, s.Replaced, s.DOIVerified, s.Dropped)

	if report.Batch != nil && len(report.Batch.Results) > 0 {
		b.WriteString("## Citations\n\n")
		for _, res := range report.Batch.Results {
			marker := "✓"
			if !res.IsValid {
				marker = "✗"
			}
			fmt.Fprintf(&b, "- %s [%d] %s (%s)\n", marker, res.Seq, res.URL, res.Type)
			for _, issue := range res.Issues {
				fmt.Fprintf(&b, "  - %s\n", issue)
			}
		}
		b.WriteString("\n")
	}

	if len(s.Issues) > 0 {
		b.WriteString("## Issues\n\n")
		keys := make([]string, 0, len(s.Issues))
		for k := range s.Issues {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %d\n", k, s.Issues[k])
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by citecheck\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderSummary prints a short summary line per outcome class to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	s := report.Summary
	fmt.Printf("%s: %d citations, %d valid, %d replaced, %d via DOI, %d dropped\n",
		report.Source, s.Total, s.Valid, s.Replaced, s.DOIVerified, s.Dropped)
}
