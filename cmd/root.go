package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/csentry/csentry/cmd/scan"
	"github.com/csentry/csentry/cmd/version"
	"github.com/csentry/csentry/pkg/shared/config"
	"github.com/csentry/csentry/pkg/shared/files"
)

const defaultConfigFile = "csentry.yml"

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "csentry [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Csentry scans C source trees for unsafe patterns.",
		Long: `Csentry is a lightweight, line-local static-analysis engine for C sources.
	It flags dangerous library calls, buffer-size mismatches, format-string misuse,
	oversized stack allocations, and dynamic stack allocation - without building an
	AST, resolving macros, or tracking data flow.
	`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is csentry.yml when present)")
	rootCmd.AddCommand(version.NewVersionCmd())
	rootCmd.AddCommand(scan.ScanCmd)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	switch {
	case cfgFile != "":
		expanded, expErr := files.ExpandPath(cfgFile)
		if expErr != nil {
			fmt.Fprintf(os.Stderr, "failed to resolve config path: %v\n", expErr)
			os.Exit(1)
		}
		AppConfig, err = config.LoadConfig(expanded)
	default:
		// the default config file is optional
		if _, statErr := os.Stat(defaultConfigFile); statErr == nil {
			AppConfig, err = config.LoadConfig(defaultConfigFile)
		} else {
			AppConfig = config.DefaultConfig()
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	scan.Init(AppConfig)
	version.Init(AppConfig)
}
