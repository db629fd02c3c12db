package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/csentry/csentry/internal/findings"
)

func newTestScanner(t *testing.T, opts Options) *Scanner {
	t.Helper()
	return New(opts, hclog.NewNullLogger())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanLinesEndToEnd(t *testing.T) {
	s := newTestScanner(t, Options{})
	lines := []string{
		"char buf[32];",
		"gets(buf);",
		"strcpy(dest, src);",
	}

	diags := s.ScanLines("test.c", lines)
	if len(diags) != 2 {
		t.Fatalf("expected exactly 2 diagnostics, got %d: %v", len(diags), diags)
	}
	if diags[0].LineNo != 2 || diags[1].LineNo != 3 {
		t.Errorf("unexpected line numbers: %d, %d", diags[0].LineNo, diags[1].LineNo)
	}
}

func TestScanLinesSafePatternsProduceNoFindings(t *testing.T) {
	s := newTestScanner(t, Options{})
	lines := []string{
		"char buf[32];",
		`snprintf(buf, sizeof(buf), "Hello %s", "World");`,
		`printf("Value: %d\n", 42);`,
		`memcpy(buf, "abcd", 4);`,
	}

	if diags := s.ScanLines("safe.c", lines); len(diags) != 0 {
		t.Errorf("expected no diagnostics for safe code, got %v", diags)
	}
}

func TestScanLinesKeepsOriginalLineNumbers(t *testing.T) {
	s := newTestScanner(t, Options{})
	lines := []string{
		"/* header",
		"   comment */",
		"gets(buf);",
	}

	diags := s.ScanLines("test.c", lines)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].LineNo != 3 {
		t.Errorf("expected line 3, got %d", diags[0].LineNo)
	}
}

func TestScanPathDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vuln.c", "char buf[32];\ngets(buf);\n")
	writeFile(t, dir, "header.h", "void* p = alloca(n);\n")
	writeFile(t, dir, "notes.txt", "gets(buf);\n")
	writeFile(t, dir, "sub/more.c", "strcpy(a, b);\n")

	s := newTestScanner(t, Options{})
	res, err := s.ScanPath(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}

	if res.Stats.FilesScanned != 3 {
		t.Errorf("expected 3 files scanned, got %d", res.Stats.FilesScanned)
	}
	if len(res.Diagnostics) != 3 {
		t.Errorf("expected 3 diagnostics, got %d: %v", len(res.Diagnostics), res.Diagnostics)
	}
	if res.RunID == "" {
		t.Error("expected a run ID")
	}
}

func TestScanPathSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "vuln.c", "gets(buf);\n")

	s := newTestScanner(t, Options{})
	res, err := s.ScanPath(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(res.Diagnostics))
	}
	if res.Diagnostics[0].File != path {
		t.Errorf("expected file %q, got %q", path, res.Diagnostics[0].File)
	}
}

func TestScanPathUnrecognizedSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "gets(buf);\n")

	s := newTestScanner(t, Options{})
	res, err := s.ScanPath(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics for unrecognized extension, got %d", len(res.Diagnostics))
	}
}

func TestScanPathMissingTarget(t *testing.T) {
	s := newTestScanner(t, Options{})
	if _, err := s.ScanPath(context.Background(), "/does/not/exist"); err == nil {
		t.Fatal("expected an error for a missing target")
	}
}

func TestScanPathExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.c", "gets(buf);\n")
	writeFile(t, dir, "vendor/lib.c", "gets(buf);\n")
	writeFile(t, dir, "vendor/deep/impl.c", "gets(buf);\n")

	s := newTestScanner(t, Options{Excludes: []string{"vendor/**"}})
	res, err := s.ScanPath(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.FilesScanned != 1 {
		t.Errorf("expected 1 file scanned after excludes, got %d", res.Stats.FilesScanned)
	}
	if len(res.Diagnostics) != 1 {
		t.Errorf("expected 1 diagnostic, got %d", len(res.Diagnostics))
	}
}

func TestScanPathParallelWorkersKeepWalkOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.c", "gets(buf);\n")
	writeFile(t, dir, "b.c", "strcpy(a, b);\n")
	writeFile(t, dir, "c.c", "void* p = alloca(n);\n")

	s := newTestScanner(t, Options{Workers: 4})
	res, err := s.ScanPath(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(res.Diagnostics))
	}
	for i, wantBase := range []string{"a.c", "b.c", "c.c"} {
		if got := filepath.Base(res.Diagnostics[i].File); got != wantBase {
			t.Errorf("diagnostic %d from %s, want %s", i, got, wantBase)
		}
	}
}

func TestScanPathCancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.c", "gets(buf);\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestScanner(t, Options{})
	if _, err := s.ScanPath(ctx, dir); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}

func TestScanPathStats(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vuln.c", "char huge[8192];\ngets(buf);\n")

	s := newTestScanner(t, Options{})
	res, err := s.ScanPath(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stats.BySeverity[findings.SeverityHigh] != 1 {
		t.Errorf("expected 1 HIGH, got %d", res.Stats.BySeverity[findings.SeverityHigh])
	}
	if res.Stats.BySeverity[findings.SeverityMed] != 1 {
		t.Errorf("expected 1 MED, got %d", res.Stats.BySeverity[findings.SeverityMed])
	}
}

func TestScanFileThresholdOption(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "buf.c", "char buf[100];\n")

	s := newTestScanner(t, Options{Threshold: 64})
	diags, err := s.ScanFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 1 {
		t.Errorf("expected 1 diagnostic with lowered threshold, got %d", len(diags))
	}
}
