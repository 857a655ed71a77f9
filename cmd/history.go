package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/sastops/ehc/internal/contract"
	"github.com/sastops/ehc/internal/history"
	"github.com/sastops/ehc/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyCmd groups the run-history subcommands.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or clear the local record of past analysis runs.",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var historyListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List past analysis runs, newest first.",
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		store := openHistoryStore()
		defer func() { _ = store.Close() }()

		runs, err := store.List()
		if err != nil {
			contract.LogFatal("Cannot list run history", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"ID", "Ran At", "Input", "Customer", "Scans", "Date Range", "Peak / Optimal"})
		for _, run := range runs {
			if err := table.Append([]string{
				fmt.Sprintf("%d", run.RunID),
				run.RanAt.Format("2006-01-02 15:04"),
				run.InputFile,
				run.Customer,
				fmt.Sprintf("%d", run.Scans),
				fmt.Sprintf("%s → %s", run.FirstScan.Format(contract.DateFormat), run.LastScan.Format(contract.DateFormat)),
				fmt.Sprintf("%d / %d", run.MaxConcurrent, run.MaxOptimal),
			}); err != nil {
				contract.LogFatal("Cannot build history table", err)
			}
		}
		if err := table.Render(); err != nil {
			contract.LogFatal("Cannot render history table", err)
		}
	},
}

var historyClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Delete all recorded runs.",
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		store := openHistoryStore()
		defer func() { _ = store.Close() }()

		if err := store.Clear(); err != nil {
			contract.LogFatal("Cannot clear run history", err)
		}
		fmt.Println("Run history cleared.")
	},
}

// historyBackend and historyDBPath are resolved by historySetup for the
// history subcommands, which never take an input file.
var (
	historyBackend schema.HistoryBackend
	historyDBPath  string
)

// historySetup resolves just the history settings from config sources.
func historySetup(_ *cobra.Command, _ []string) error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	backend := schema.HistoryBackend(viper.GetString("history-backend"))
	if _, ok := schema.ValidHistoryBackends[backend]; !ok {
		return fmt.Errorf("invalid history-backend %q (valid: sqlite, none)", backend)
	}
	if backend == schema.NoneHistory {
		return fmt.Errorf("run history is disabled (history-backend is none)")
	}

	historyBackend = backend
	historyDBPath = viper.GetString("history-db")
	return nil
}

func openHistoryStore() contract.HistoryStore {
	store, err := history.NewStore(historyBackend, historyDBPath)
	if err != nil {
		contract.LogFatal("Cannot open run history", err)
	}
	return store
}
