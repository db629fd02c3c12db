package engine

import "strings"

// StripComments removes line-comment and block-comment content from C source
// lines while keeping the line count and line positions intact, so every
// downstream rule can report 1-based line numbers against the original file.
//
// Block comments follow the language's own non-nesting semantics: the first
// "*/" after an opener closes the comment, and any interior "/*" markers are
// just comment text. A line living entirely inside a block comment becomes an
// empty string, never gets dropped.
func StripComments(lines []string) []string {
	stripped := make([]string, 0, len(lines))
	inBlock := false

	for _, line := range lines {
		if inBlock {
			end := strings.Index(line, "*/")
			if end == -1 {
				stripped = append(stripped, "")
				continue
			}
			line = line[end+2:]
			inBlock = false
		}

		for {
			start := strings.Index(line, "/*")
			if start == -1 {
				break
			}
			end := strings.Index(line[start+2:], "*/")
			if end == -1 {
				line = line[:start]
				inBlock = true
				break
			}
			line = line[:start] + line[start+2+end+2:]
		}

		if idx := strings.Index(line, "//"); idx != -1 {
			line = line[:idx]
		}
		stripped = append(stripped, line)
	}

	return stripped
}
