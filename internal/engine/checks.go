// Package engine implements the line-local analysis passes: a comment
// stripper that keeps line numbers stable, a best-effort buffer symbol
// table, and the detection rules that consume both.
//
// Every pass is a pure function over its inputs. There is no parser, no
// macro expansion and no cross-line statement reconstruction; a line that
// fails to match a pattern simply produces no diagnostic.
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/csentry/csentry/internal/findings"
)

// CheckUnsafeFunctions reports every catalogued unsafe function called on a
// line, one diagnostic per function name. Matches are whole-word: a longer
// identifier containing a catalogued name does not trigger.
func CheckUnsafeFunctions(file string, lines []string) []findings.Diagnostic {
	var diags []findings.Diagnostic
	for i, line := range lines {
		for _, rule := range unsafeFunctions {
			if !callPatterns[rule.Name].MatchString(line) {
				continue
			}
			diags = append(diags, findings.Diagnostic{
				File:           file,
				LineNo:         i + 1,
				Severity:       rule.Severity,
				Classification: rule.Classification,
				Message:        fmt.Sprintf("%s used. %s", rule.Name, rule.Advice),
				LineText:       trimLine(line),
			})
		}
	}
	return diags
}

// CheckMemcpyOverflows reports memcpy calls whose literal byte count exceeds
// the declared capacity of the destination buffer. Destinations missing from
// the symbol table and non-literal sizes are skipped silently: without a
// known capacity or a countable size there is nothing to prove.
func CheckMemcpyOverflows(file string, lines []string, bufs map[string]int) []findings.Diagnostic {
	var diags []findings.Diagnostic
	for i, line := range lines {
		m := memcpyRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		dest := m[1]
		size, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}

		declSize, ok := bufs[dest]
		if !ok || size <= declSize {
			continue
		}

		diags = append(diags, findings.Diagnostic{
			File:           file,
			LineNo:         i + 1,
			Severity:       findings.SeverityHigh,
			Classification: "CWE-120",
			Message:        fmt.Sprintf("memcpy to '%s' copies %d bytes but buffer is only %d bytes.", dest, size, declSize),
			LineText:       trimLine(line),
		})
	}
	return diags
}

// CheckPrintfFormat reports printf calls whose first argument is not a
// string literal, which can indicate a format string vulnerability when the
// argument is attacker controlled. Only single-line printf(...); statements
// are visible to this rule; calls split across lines are a documented recall
// limitation of the line-oriented design.
func CheckPrintfFormat(file string, lines []string) []findings.Diagnostic {
	var diags []findings.Diagnostic
	for i, line := range lines {
		m := printfCallRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		firstArg, _, _ := strings.Cut(m[1], ",")
		if strings.HasPrefix(strings.TrimSpace(firstArg), `"`) {
			continue
		}

		diags = append(diags, findings.Diagnostic{
			File:           file,
			LineNo:         i + 1,
			Severity:       findings.SeverityHigh,
			Classification: "CWE-134",
			Message:        "printf called with non-literal format string; possible format string vulnerability.",
			LineText:       trimLine(line),
		})
	}
	return diags
}

// CheckLargeStackBuffers reports fixed-size char array declarations whose
// size strictly exceeds threshold. A buffer exactly at the threshold is not
// flagged.
func CheckLargeStackBuffers(file string, lines []string, threshold int) []findings.Diagnostic {
	var diags []findings.Diagnostic
	for i, line := range lines {
		m := charArrayDeclRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		size, err := strconv.Atoi(m[2])
		if err != nil || size <= threshold {
			continue
		}
		diags = append(diags, findings.Diagnostic{
			File:           file,
			LineNo:         i + 1,
			Severity:       findings.SeverityMed,
			Classification: "CWE-770",
			Message:        fmt.Sprintf("Large stack buffer (%d bytes) may cause stack overflow.", size),
			LineText:       trimLine(line),
		})
	}
	return diags
}

// CheckAllocaUsage reports any call of alloca. Arguments are not inspected;
// dynamic stack allocation is flagged as such.
func CheckAllocaUsage(file string, lines []string) []findings.Diagnostic {
	var diags []findings.Diagnostic
	for i, line := range lines {
		if !allocaRe.MatchString(line) {
			continue
		}
		diags = append(diags, findings.Diagnostic{
			File:           file,
			LineNo:         i + 1,
			Severity:       findings.SeverityMed,
			Classification: "CWE-770",
			Message:        "alloca() can cause stack overflow; prefer heap allocation.",
			LineText:       trimLine(line),
		})
	}
	return diags
}

func trimLine(line string) string {
	return strings.TrimRightFunc(line, unicode.IsSpace)
}
