package scan

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/csentry/csentry/internal/report"
	"github.com/csentry/csentry/internal/scanner"
	"github.com/csentry/csentry/pkg/shared"
	"github.com/csentry/csentry/pkg/shared/config"
	"github.com/csentry/csentry/pkg/shared/files"
	"github.com/csentry/csentry/pkg/shared/logger"
)

// RunOptionsScan holds the arguments for the scan command.
type RunOptionsScan struct {
	OutputPath string
	Format     string
	Threshold  int
	Threads    int
	NoColor    bool
	Extensions []string
	Excludes   []string
}

var (
	AppConfig        *config.Config
	scanOptions      RunOptionsScan
	exampleScanUsage = `  # Scanning a single file
  csentry scan /path/to/main.c

  # Scanning a directory tree with colored console output
  csentry scan /path/to/my_project

  # Writing a SARIF report to a file
  csentry scan --format sarif --output /path/to/report.sarif /path/to/my_project

  # Lowering the large-stack-buffer threshold and excluding vendored code
  csentry scan --threshold 512 --exclude 'vendor/**' /path/to/my_project

  # Scanning with multiple concurrent workers
  csentry scan -j 4 /path/to/my_project`
)

// ScanCmd represents the scan command.
var ScanCmd = &cobra.Command{
	Use:                   "scan [--format/-f FORMAT] [--output/-o PATH] [--threshold N] [-j THREADS_NUMBER, default=1] [--no-color] PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleScanUsage,
	Short:                 "Scans a C file or directory tree for unsafe patterns",
	RunE:                  runScanCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runScanCommand executes the scan command.
func runScanCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	logger := logger.NewLogger(AppConfig, "core-scan")

	if err := validateScanArgs(&scanOptions, args); err != nil {
		logger.Error("invalid scan arguments", "error", err)
		return err
	}

	applyConfigDefaults(cmd, &scanOptions, AppConfig)

	format, err := report.ParseFormat(scanOptions.Format)
	if err != nil {
		logger.Error("invalid report format", "error", err)
		return err
	}

	s := scanner.New(scanner.Options{
		Threshold:  scanOptions.Threshold,
		Extensions: scanOptions.Extensions,
		Excludes:   scanOptions.Excludes,
		Workers:    scanOptions.Threads,
	}, logger)

	res, err := s.ScanPath(cmd.Context(), args[0])
	if err != nil {
		logger.Error("scan failed", "error", err)
		return err
	}

	out, cleanup, err := openOutput(scanOptions.OutputPath, format)
	if err != nil {
		logger.Error("failed to open output", "error", err)
		return err
	}
	defer cleanup()

	// color only makes sense on a console
	colored := !scanOptions.NoColor && scanOptions.OutputPath == ""
	writer, err := report.NewWriter(format, out, colored)
	if err != nil {
		return err
	}
	if err := writer.Write(res); err != nil {
		logger.Error("failed to write report", "error", err)
		return err
	}

	logger.Info("scan completed",
		"files", res.Stats.FilesScanned,
		"findings", len(res.Diagnostics),
	)
	return nil
}

// applyConfigDefaults backfills options the user did not set on the command
// line from the loaded configuration.
func applyConfigDefaults(cmd *cobra.Command, opts *RunOptionsScan, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if !cmd.Flags().Changed("format") && cfg.Report.Format != "" {
		opts.Format = cfg.Report.Format
	}
	if !cmd.Flags().Changed("threshold") && cfg.Scanner.Threshold > 0 {
		opts.Threshold = cfg.Scanner.Threshold
	}
	if !cmd.Flags().Changed("threads") && cfg.Scanner.Threads > 0 {
		opts.Threads = cfg.Scanner.Threads
	}
	if !cmd.Flags().Changed("ext") && len(cfg.Scanner.Extensions) > 0 {
		opts.Extensions = cfg.Scanner.Extensions
	}
	if !cmd.Flags().Changed("exclude") && len(cfg.Scanner.Exclude) > 0 {
		opts.Excludes = cfg.Scanner.Exclude
	}
}

// openOutput resolves the report destination. An empty path means stdout.
func openOutput(outputPath string, format report.Format) (*os.File, func(), error) {
	if outputPath == "" {
		return os.Stdout, func() {}, nil
	}

	nameTemplate := fmt.Sprintf("csentry-report.%s", reportExtension(format))
	fullPath, folder, err := files.DetermineFileFullPath(outputPath, nameTemplate)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to determine output file path: %w", err)
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return nil, nil, fmt.Errorf("failed to create output folder: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file %q: %w", fullPath, err)
	}
	return file, func() { file.Close() }, nil
}

func reportExtension(format report.Format) string {
	switch format {
	case report.FormatJSON:
		return "json"
	case report.FormatSarif:
		return "sarif"
	default:
		return "txt"
	}
}

// Initialize flags for the scan command.
func init() {
	ScanCmd.Flags().StringVarP(&scanOptions.Format, "format", "f", "text", "Format for the report with results (text, json, sarif).")
	ScanCmd.Flags().BoolP("help", "h", false, "Show help for the scan command.")
	ScanCmd.Flags().StringVarP(&scanOptions.OutputPath, "output", "o", "", "Path to the output file or directory where the results will be saved.")
	ScanCmd.Flags().IntVar(&scanOptions.Threshold, "threshold", 1024, "Stack buffer size above which a declaration is flagged.")
	ScanCmd.Flags().IntVarP(&scanOptions.Threads, "threads", "j", 1, "Number of concurrent file scans.")
	ScanCmd.Flags().BoolVar(&scanOptions.NoColor, "no-color", false, "Disable colored console output.")
	ScanCmd.Flags().StringSliceVar(&scanOptions.Extensions, "ext", nil, "File extensions to scan (default .c,.h).")
	ScanCmd.Flags().StringSliceVar(&scanOptions.Excludes, "exclude", nil, "Glob patterns of paths to skip, relative to the scan root.")
}
