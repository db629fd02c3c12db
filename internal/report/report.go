// Package report renders scan results as text, JSON, or SARIF. Presentation
// ordering (severity rank, then file, then line) happens here, never in the
// engine.
package report

import (
	"fmt"
	"io"

	"github.com/csentry/csentry/internal/scanner"
)

// Format identifies an output format.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatSarif Format = "sarif"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatText, FormatJSON, FormatSarif:
		return Format(name), nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown report format %q (expected text, json, or sarif)", name)
	}
}

// Writer renders one scan result to its destination.
type Writer interface {
	Write(res *scanner.Result) error
}

// NewWriter returns the writer for the requested format. colored only
// affects the text format.
func NewWriter(format Format, out io.Writer, colored bool) (Writer, error) {
	switch format {
	case FormatText:
		return NewTextWriter(out, colored), nil
	case FormatJSON:
		return NewJSONWriter(out), nil
	case FormatSarif:
		return NewSarifWriter(out), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}
