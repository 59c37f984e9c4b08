package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pyvet/pyvet/internal/config"
	"github.com/pyvet/pyvet/internal/output"
)

var (
	// Version information injected by goreleaser
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagQuiet   bool
	flagVerbose bool
	flagDebug   bool
)

var logger *slog.Logger

var rootCmd = &cobra.Command{
	Use:   "pyvet",
	Short: "Rule-based static analysis for Python source trees",
	Long: `pyvet scans Python files for deprecated imports, overlong functions,
excessive parameter lists, deep nesting, and oversized files, and reports
the findings as an ordered JSON report.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = output.SetupLogger(flagQuiet, flagVerbose, flagDebug, os.Stderr)
		slog.SetDefault(logger)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pyvet %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built at: %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log per-file progress")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug detail")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the tiered configuration for the current working
// directory.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadTiered(config.MachinePath(), config.ProjectPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
