package report

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/csentry/csentry/internal/findings"
	"github.com/csentry/csentry/internal/scanner"
)

const toolInformationURI = "https://github.com/csentry/csentry"

// SarifWriter renders the result as a SARIF 2.1.0 report with one run, one
// reporting descriptor per classification code, and one result per finding.
type SarifWriter struct {
	out io.Writer
}

func NewSarifWriter(out io.Writer) *SarifWriter {
	return &SarifWriter{out: out}
}

func (w *SarifWriter) Write(res *scanner.Result) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("csentry", toolInformationURI)
	run.Properties = sarif.Properties{"run_id": res.RunID}

	seen := map[string]bool{}
	for _, d := range res.Diagnostics {
		ruleID := sarifRuleID(d)
		if !seen[ruleID] {
			seen[ruleID] = true
			run.AddRule(ruleID).
				WithShortDescription(sarif.NewMultiformatMessageString(d.Message))
		}

		location := sarif.NewLocationWithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewSimpleArtifactLocation(d.File)).
				WithRegion(sarif.NewSimpleRegion(d.LineNo, d.LineNo)),
		)

		run.CreateResultForRule(ruleID).
			WithLevel(sarifLevel(d.Severity)).
			WithMessage(sarif.NewTextMessage(d.Message)).
			AddLocation(location)
	}

	report.AddRun(run)
	if err := report.PrettyWrite(w.out); err != nil {
		return fmt.Errorf("failed to write SARIF report: %w", err)
	}
	return nil
}

// sarifRuleID maps a diagnostic to its reporting descriptor. Findings
// without a classification fall back to a generic id.
func sarifRuleID(d findings.Diagnostic) string {
	if d.Classification != "" {
		return d.Classification
	}
	return "UNSAFE-PATTERN"
}

func sarifLevel(s findings.Severity) string {
	switch s {
	case findings.SeverityHigh:
		return "error"
	case findings.SeverityMed:
		return "warning"
	default:
		return "note"
	}
}
