package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/csentry/csentry/internal/scanner"
)

// JSONWriter renders the result as indented JSON with the canonical
// diagnostic field set, keeping the scan's own ordering.
type JSONWriter struct {
	out io.Writer
}

func NewJSONWriter(out io.Writer) *JSONWriter {
	return &JSONWriter{out: out}
}

func (w *JSONWriter) Write(res *scanner.Result) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to encode JSON report: %w", err)
	}
	return nil
}
