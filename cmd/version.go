package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints build metadata stamped in at release time.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information.",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("ehc %s (commit %s, built %s)\n", version, commit, date)
	},
}
