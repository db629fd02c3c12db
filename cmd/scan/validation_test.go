package scan

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateScanArgs(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "csentry_example")
	assert.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	tests := []struct {
		name    string
		options RunOptionsScan
		args    []string
		wantErr string
	}{
		{
			// valid: csentry scan /path/to/target
			name: "Valid target path",
			options: RunOptionsScan{
				Threshold: 1024,
				Threads:   1,
			},
			args:    []string{tmpDir},
			wantErr: "",
		},
		{
			// invalid: csentry scan
			name: "Missing target path",
			options: RunOptionsScan{
				Threshold: 1024,
				Threads:   1,
			},
			args:    []string{},
			wantErr: "a target path must be specified",
		},
		{
			// invalid: csentry scan /one /two
			name: "Multiple target paths",
			options: RunOptionsScan{
				Threshold: 1024,
				Threads:   1,
			},
			args:    []string{tmpDir, tmpDir},
			wantErr: "only one target path may be specified, got 2",
		},
		{
			name: "Non-existent target path",
			options: RunOptionsScan{
				Threshold: 1024,
				Threads:   1,
			},
			args:    []string{"/definitely/not/here"},
			wantErr: "the target path does not exist: /definitely/not/here",
		},
		{
			name: "Non-positive threshold",
			options: RunOptionsScan{
				Threshold: 0,
				Threads:   1,
			},
			args:    []string{tmpDir},
			wantErr: "the 'threshold' flag must be a positive integer",
		},
		{
			name: "Non-positive threads",
			options: RunOptionsScan{
				Threshold: 1024,
				Threads:   0,
			},
			args:    []string{tmpDir},
			wantErr: "the 'threads' flag must be a positive integer",
		},
		{
			name: "Extension without leading dot",
			options: RunOptionsScan{
				Threshold:  1024,
				Threads:    1,
				Extensions: []string{"c"},
			},
			args:    []string{tmpDir},
			wantErr: `extension "c" must start with a dot`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateScanArgs(&tt.options, tt.args)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
