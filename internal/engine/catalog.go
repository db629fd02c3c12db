package engine

import (
	"regexp"

	"github.com/csentry/csentry/internal/findings"
)

// FuncRule is the catalogue metadata for one unsafe function: flagged on any
// whole-word call, with a fixed severity and weakness classification.
type FuncRule struct {
	Name           string
	Severity       findings.Severity
	Classification string
	Advice         string
}

// unsafeFunctions is the process-wide catalogue of functions flagged on
// sight. Ordered so multiple matches on one line always report in the same
// sequence. Never mutated after init.
var unsafeFunctions = []FuncRule{
	{"gets", findings.SeverityHigh, "CWE-242", "gets() is inherently unsafe; use fgets() instead."},
	{"strcpy", findings.SeverityHigh, "CWE-120", "Potential buffer overflow; use strncpy()/strlcpy()."},
	{"strcat", findings.SeverityHigh, "CWE-120", "Potential buffer overflow; use strncat()/strlcat()."},
	{"sprintf", findings.SeverityMed, "CWE-120/CWE-134", "Use snprintf() to limit buffer size."},
	{"vsprintf", findings.SeverityMed, "CWE-120/CWE-134", "Use vsnprintf() to limit buffer size."},
	{"scanf", findings.SeverityHigh, "CWE-120", `Unbounded scanf can overflow buffers; prefer fgets() or bounded width (e.g., "%31s").`},
	{"fscanf", findings.SeverityHigh, "CWE-120", "Unbounded fscanf can overflow buffers; prefer fgets() or bounded width."},
	{"sscanf", findings.SeverityHigh, "CWE-120", "Unbounded sscanf can overflow buffers; ensure bounded width in format string."},
}

// callPatterns holds one compiled matcher per catalogued function. The \b
// boundary keeps identifiers like mygets() from matching gets.
var callPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(unsafeFunctions))
	for _, rule := range unsafeFunctions {
		patterns[rule.Name] = regexp.MustCompile(`\b` + regexp.QuoteMeta(rule.Name) + `\s*\(`)
	}
	return patterns
}()

// Matchers shared across the rule passes. Sizes are captured as runs of
// decimal digits only; expressions are never evaluated.
var (
	charArrayDeclRe = regexp.MustCompile(`\bchar\s+(\w+)\s*\[\s*(\d+)\s*\]`)
	memcpyRe        = regexp.MustCompile(`\bmemcpy\s*\(\s*(\w+)\s*,\s*[^,]+,\s*(\d+)\s*\)`)
	printfCallRe    = regexp.MustCompile(`\bprintf\s*\((.+)\);`)
	allocaRe        = regexp.MustCompile(`\balloca\s*\(`)
)

// DefaultStackBufferThreshold is the stack-buffer size above which
// CheckLargeStackBuffers reports, unless the caller overrides it.
const DefaultStackBufferThreshold = 1024
