package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lungoruscello/acled-concat/internal/consolidate"
)

// Version is set at build time via -ldflags "-X main.Version=...".
var Version = "dev"

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "acled-concat <source_dir>",
	Short: "Consolidate sequential ACLED CSV exports into one deduplicated dataset",
	Long: `acled-concat merges a directory of periodic ACLED CSV exports into a single
consolidated_acled.csv, keeping exactly one record per event.

Input files must be named NN-acled_<description>.csv, where NN is a
two-digit sequence prefix and higher prefixes cover later date ranges.
Consecutive exports must overlap in their event_date coverage; a date gap
between two exports aborts the run. Events appearing in more than one
export are deduplicated by keeping the most recently edited version.`,
	Version:       Version,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := consolidate.Run(args[0], logger); err != nil {
			logger.Error("failed to consolidate ACLED data", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
