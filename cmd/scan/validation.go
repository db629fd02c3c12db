package scan

import (
	"fmt"
	"os"
	"strings"
)

// validateScanArgs validates the arguments provided to the scan command.
func validateScanArgs(opts *RunOptionsScan, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("a target path must be specified")
	}
	if len(args) > 1 {
		return fmt.Errorf("only one target path may be specified, got %d", len(args))
	}

	targetPath := args[0]
	if _, err := os.Stat(targetPath); os.IsNotExist(err) {
		return fmt.Errorf("the target path does not exist: %v", targetPath)
	}

	if opts.Threshold <= 0 {
		return fmt.Errorf("the 'threshold' flag must be a positive integer")
	}

	if opts.Threads <= 0 {
		return fmt.Errorf("the 'threads' flag must be a positive integer")
	}

	for _, ext := range opts.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	return nil
}
