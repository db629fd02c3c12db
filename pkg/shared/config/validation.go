package config

import (
	"fmt"
	"strings"
)

var validLogLevels = []string{"", "trace", "debug", "info", "warn", "error"}

var validFormats = []string{"", "text", "json", "sarif"}

// ValidateConfig checks if the loaded configuration has valid values.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML config: configuration object is nil")
	}
	if err := validateLoggerConfig(&cfg.Logger); err != nil {
		return fmt.Errorf("YAML config: logger directive is invalid: %w", err)
	}
	if err := validateScannerConfig(&cfg.Scanner); err != nil {
		return fmt.Errorf("YAML config: scanner directive is invalid: %w", err)
	}
	if err := validateReportConfig(&cfg.Report); err != nil {
		return fmt.Errorf("YAML config: report directive is invalid: %w", err)
	}
	return nil
}

func validateLoggerConfig(cfg *Logger) error {
	level := strings.ToLower(cfg.Level)
	for _, valid := range validLogLevels {
		if level == valid {
			return nil
		}
	}
	return fmt.Errorf("unknown log level %q", cfg.Level)
}

func validateScannerConfig(cfg *Scanner) error {
	if cfg.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative: %d", cfg.Threshold)
	}
	if cfg.Threads < 0 || cfg.Threads > 64 {
		return fmt.Errorf("threads must be between 0 and 64: %d", cfg.Threads)
	}
	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

func validateReportConfig(cfg *Report) error {
	format := strings.ToLower(cfg.Format)
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return fmt.Errorf("unknown report format %q", cfg.Format)
}
