package findings

import "sort"

// Severity is the coarse priority bucket assigned to a diagnostic.
type Severity string

const (
	SeverityHigh Severity = "HIGH"
	SeverityMed  Severity = "MED"
	SeverityLow  Severity = "LOW"
)

// Rank returns the display ordering for a severity. Lower ranks sort first.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMed:
		return 1
	case SeverityLow:
		return 2
	default:
		return 3
	}
}

// Diagnostic is a single finding tying a rule match to a file location.
// The field order is the canonical external representation other tools
// should rely on.
type Diagnostic struct {
	File           string   `json:"file"`
	LineNo         int      `json:"line_no"`
	Severity       Severity `json:"severity"`
	Classification string   `json:"classification,omitempty"`
	Message        string   `json:"message"`
	LineText       string   `json:"line_text"`
}

// SortForDisplay orders diagnostics by severity rank, then file, then line.
// This is a presentation concern; the scan itself preserves per-file line
// order and callers wanting the raw order should not use this.
func SortForDisplay(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i], diags[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() < b.Severity.Rank()
		}
		if a.File != b.File {
			return a.File < b.File
		}
		return a.LineNo < b.LineNo
	})
}

// CountBySeverity tallies diagnostics per severity bucket.
func CountBySeverity(diags []Diagnostic) map[Severity]int {
	counts := make(map[Severity]int)
	for _, d := range diags {
		counts[d.Severity]++
	}
	return counts
}
