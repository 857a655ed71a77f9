// Package cmd defines the command-line interface for ehc.
package cmd

import (
	"github.com/sastops/ehc/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("history-backend", "sqlite", "Run-history backend: sqlite or none")
	rootCmd.PersistentFlags().String("history-db", "", "Path to the run-history database file")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analyzeCmd to Viper
	analyzeCmd.Flags().String("customer", "", "Optional name of the customer, used in the output directory name")
	analyzeCmd.Flags().Bool("csv", false, "Generate per-section CSV output files")
	analyzeCmd.Flags().Bool("full-data", false, "Generate a full raw-data dump of every scan record")
	analyzeCmd.Flags().String("full-format", "csv", "Full dump format: csv or parquet")
	analyzeCmd.Flags().String("excel", "", "Export results directly into the given spreadsheet template")
	analyzeCmd.Flags().StringP("output-dir", "o", "", "Output directory (default: ehc_output_<name>_<timestamp>)")
	analyzeCmd.Flags().Int("snapshot-seconds", contract.DefaultSnapshotSeconds, "Width of concurrency snapshots in seconds")
	analyzeCmd.Flags().Bool("progress", true, "Show a progress bar while processing")
	if err := viper.BindPFlags(analyzeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analyze flags", err)
	}
}
