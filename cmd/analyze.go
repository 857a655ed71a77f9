package cmd

import (
	"github.com/sastops/ehc/core"
	"github.com/sastops/ehc/internal/contract"
	"github.com/sastops/ehc/internal/history"
	"github.com/spf13/cobra"
)

// analyzeCmd runs the full analysis pipeline over one scan export.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <input-file>",
	Short: "Aggregate a scan export into the full statistics report.",
	Long: `Stream a scan-activity JSON export once and produce the full battery of
statistics: volume, duration, severity results, submission patterns and
engine/queue concurrency.

Examples:
  # Console summary only
  ehc analyze scans.json

  # Per-section CSV files plus the full raw-data dump
  ehc analyze scans.json --csv --full-data

  # Dump the raw data as parquet instead of CSV
  ehc analyze scans.json --full-data --full-format parquet

  # Fill an existing spreadsheet template directly
  ehc analyze scans.json --excel report-template.xlsx

  # Name the customer for the output directory
  ehc analyze scans.json --csv --customer "Acme Corp"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := history.NewStore(cfg.HistoryBackend, cfg.HistoryDBPath)
		if err != nil {
			contract.LogFatal("Cannot open run history", err)
		}
		defer func() { _ = store.Close() }()

		if err := core.ExecuteAnalysis(cfg, store); err != nil {
			contract.LogFatal("Analysis failed", err)
		}
	},
}
