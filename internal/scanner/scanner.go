// Package scanner composes the engine passes into per-file and per-tree
// scans. It owns all file I/O: the engine itself only ever sees line
// sequences that were already read.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/csentry/csentry/internal/engine"
	"github.com/csentry/csentry/internal/findings"
)

// DefaultExtensions are the source-header extensions scanned when the caller
// does not override them.
var DefaultExtensions = []string{".c", ".h"}

// Options configures a Scanner. Zero values fall back to defaults in New.
type Options struct {
	Threshold  int      // stack-buffer size threshold, exclusive
	Extensions []string // recognized file extensions, with leading dot
	Excludes   []string // doublestar patterns, matched against slash paths relative to the scan root
	Workers    int      // concurrent file scans
}

// Scanner runs the analysis passes over files and directory trees.
type Scanner struct {
	threshold  int
	extensions []string
	excludes   []string
	workers    int
	logger     hclog.Logger
}

// Stats summarises one scan run.
type Stats struct {
	FilesScanned int                       `json:"files_scanned"`
	FilesSkipped int                       `json:"files_skipped"`
	Duration     time.Duration             `json:"duration_ns"`
	BySeverity   map[findings.Severity]int `json:"by_severity"`
}

// Result is the aggregate outcome of a scan, consumed by the report layer.
type Result struct {
	RunID       string                `json:"run_id"`
	Target      string                `json:"target"`
	Diagnostics []findings.Diagnostic `json:"findings"`
	Stats       Stats                 `json:"stats"`
}

// New creates a Scanner with the provided options, applying defaults for
// any zero values.
func New(opts Options, logger hclog.Logger) *Scanner {
	if opts.Threshold <= 0 {
		opts.Threshold = engine.DefaultStackBufferThreshold
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	return &Scanner{
		threshold:  opts.Threshold,
		extensions: opts.Extensions,
		excludes:   opts.Excludes,
		workers:    opts.Workers,
		logger:     logger,
	}
}

// ScanLines runs all detection rules over already-read raw lines. Rules run
// in a fixed order and each rule's records keep line order, so the output is
// deterministic for a given input.
func (s *Scanner) ScanLines(path string, raw []string) []findings.Diagnostic {
	lines := engine.StripComments(raw)
	bufs := engine.CollectBufferDecls(lines)

	var diags []findings.Diagnostic
	diags = append(diags, engine.CheckUnsafeFunctions(path, lines)...)
	diags = append(diags, engine.CheckMemcpyOverflows(path, lines, bufs)...)
	diags = append(diags, engine.CheckPrintfFormat(path, lines)...)
	diags = append(diags, engine.CheckLargeStackBuffers(path, lines, s.threshold)...)
	diags = append(diags, engine.CheckAllocaUsage(path, lines)...)
	return diags
}

// ScanFile reads a single file leniently and runs all rules over it.
func (s *Scanner) ScanFile(path string) ([]findings.Diagnostic, error) {
	raw, err := readLines(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return s.ScanLines(path, raw), nil
}

// ScanPath scans a single file or a directory tree. Unreadable files are
// logged and skipped; they degrade to zero findings for that file and never
// abort the rest of the run. The returned error is reserved for an unusable
// target or a cancelled context.
func (s *Scanner) ScanPath(ctx context.Context, target string) (*Result, error) {
	start := time.Now()

	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("failed to access target %q: %w", target, err)
	}

	var paths []string
	if info.IsDir() {
		paths, err = s.collectFiles(target)
		if err != nil {
			return nil, err
		}
	} else if s.hasRecognizedExt(target) {
		paths = []string{target}
	}

	res := &Result{
		RunID:  uuid.New().String(),
		Target: target,
	}

	diags, skipped, err := s.scanAll(ctx, paths)
	if err != nil {
		return nil, err
	}

	res.Diagnostics = diags
	res.Stats = Stats{
		FilesScanned: len(paths) - skipped,
		FilesSkipped: skipped,
		Duration:     time.Since(start),
		BySeverity:   findings.CountBySeverity(diags),
	}

	s.logger.Debug("scan finished",
		"run_id", res.RunID,
		"files", res.Stats.FilesScanned,
		"skipped", res.Stats.FilesSkipped,
		"findings", len(res.Diagnostics),
	)
	return res, nil
}

// scanAll fans the files out across the configured number of workers. Each
// file's diagnostics keep their own line order and the aggregate keeps the
// walk order regardless of worker scheduling.
func (s *Scanner) scanAll(ctx context.Context, paths []string) ([]findings.Diagnostic, int, error) {
	perFile := make([][]findings.Diagnostic, len(paths))
	skippedCh := make(chan int, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				diags, err := s.ScanFile(paths[i])
				if err != nil {
					s.logger.Warn("skipping unreadable file", "path", paths[i], "error", err)
					skippedCh <- 1
					continue
				}
				perFile[i] = diags
			}
		}()
	}

	var ctxErr error
submit:
	for i := range paths {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break submit
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	close(skippedCh)

	if ctxErr != nil {
		return nil, 0, fmt.Errorf("scan cancelled: %w", ctxErr)
	}

	skipped := 0
	for range skippedCh {
		skipped++
	}

	var diags []findings.Diagnostic
	for _, fileDiags := range perFile {
		diags = append(diags, fileDiags...)
	}
	return diags, skipped, nil
}

// collectFiles walks the tree rooted at root and returns the files with a
// recognized extension, minus any matching an exclude pattern.
func (s *Scanner) collectFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("skipping inaccessible path", "path", path, "error", err)
			return nil
		}
		if d.IsDir() || !s.hasRecognizedExt(path) {
			return nil
		}
		if s.isExcluded(root, path) {
			s.logger.Debug("excluded by pattern", "path", path)
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", root, err)
	}
	return paths, nil
}

func (s *Scanner) hasRecognizedExt(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range s.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

func (s *Scanner) isExcluded(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range s.excludes {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// readLines splits a file into lines without any decoding validation:
// invalid byte sequences pass through untouched and simply fail to match
// any rule pattern.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}
