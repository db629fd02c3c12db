package report

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/csentry/csentry/internal/findings"
	"github.com/csentry/csentry/internal/scanner"
)

// TextWriter renders results as human-readable console blocks, one per
// finding, sorted for display.
type TextWriter struct {
	out     io.Writer
	colored bool
}

// NewTextWriter creates a text writer. When colored is false no ANSI escape
// codes are ever emitted.
func NewTextWriter(out io.Writer, colored bool) *TextWriter {
	return &TextWriter{out: out, colored: colored}
}

func (w *TextWriter) Write(res *scanner.Result) error {
	if len(res.Diagnostics) == 0 {
		fmt.Fprintln(w.out, "No issues found.")
		w.writeSummary(res)
		return nil
	}

	diags := make([]findings.Diagnostic, len(res.Diagnostics))
	copy(diags, res.Diagnostics)
	findings.SortForDisplay(diags)

	for _, d := range diags {
		classification := ""
		if d.Classification != "" {
			classification = fmt.Sprintf(" (%s)", d.Classification)
		}
		fmt.Fprintf(w.out, "[%s] %s:%d%s\n", w.severityLabel(d.Severity), d.File, d.LineNo, classification)
		fmt.Fprintf(w.out, "  %s\n", d.Message)
		fmt.Fprintf(w.out, "  > %s\n\n", d.LineText)
	}

	w.writeSummary(res)
	return nil
}

func (w *TextWriter) writeSummary(res *scanner.Result) {
	fmt.Fprintf(w.out, "Scanned %d files in %s: %d HIGH, %d MED, %d LOW",
		res.Stats.FilesScanned,
		res.Stats.Duration.Round(time.Millisecond),
		res.Stats.BySeverity[findings.SeverityHigh],
		res.Stats.BySeverity[findings.SeverityMed],
		res.Stats.BySeverity[findings.SeverityLow],
	)
	if res.Stats.FilesSkipped > 0 {
		fmt.Fprintf(w.out, " (%d files skipped)", res.Stats.FilesSkipped)
	}
	fmt.Fprintln(w.out)
}

func (w *TextWriter) severityLabel(s findings.Severity) string {
	if !w.colored {
		return string(s)
	}
	switch s {
	case findings.SeverityHigh:
		return color.New(color.FgRed, color.Bold).Sprint(string(s))
	case findings.SeverityMed:
		return color.New(color.FgYellow).Sprint(string(s))
	default:
		return color.New(color.FgCyan).Sprint(string(s))
	}
}
