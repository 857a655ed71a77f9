package outwriter

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sastops/ehc/internal/contract"
	"github.com/sastops/ehc/schema"
	"golang.org/x/term"
)

// percent renders a fraction as a console percentage with one decimal.
func percent(frac float64) string {
	return fmt.Sprintf("%.1f%%", frac*100)
}

// terminalWidth detects the terminal width, falling back to a conservative
// default for pipes and CI.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// PrintSummary prints the headline figures of a run as a console table.
// It is always shown, regardless of which file outputs are enabled.
func PrintSummary(stats *schema.Stats, cc schema.ConcurrencySummary) error {
	m := &stats.Aggregate

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Metric", "Value", "Detail"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
		cfg.MaxWidth = terminalWidth()
	})

	data := [][]string{
		{"Date Range", fmt.Sprintf("%s → %s", m.FirstScan.Format(contract.DateFormat), m.LastScan.Format(contract.DateFormat)), fmt.Sprintf("%d days, %d weeks", m.TotalDays, m.TotalWeeks)},
		{"Scans", contract.HeadlineColor.Sprint(m.Scans), fmt.Sprintf("%d ran, %d no-change, %d missing LOC", m.YesScans, m.NoScans, m.MissingScans)},
		{"Full / Incremental", fmt.Sprintf("%d / %d", m.FullScans, m.IncrementalScans), percent(fraction(m.IncrementalScans, m.Scans)) + " incremental"},
		{"Unique Projects", fmt.Sprintf("%d", m.UniqueProjects), ""},
		{"LOC per Scan", fmt.Sprintf("%d avg", m.AvgLOCScan), fmt.Sprintf("%d max", m.MaxLOCScan)},
		{"Total Scan Time", formatHMS(m.AvgTotalScanTime) + " avg", formatHMS(m.MaxTotalScanTime) + " max"},
		{"Engine Scan Time", formatHMS(m.AvgEngineScanTime) + " avg", formatHMS(m.MaxEngineScanTime) + " max"},
		{"Queue Time", formatHMS(m.AvgQueueTime) + " avg", formatHMS(m.MaxQueueTime) + " max"},
		{"Busiest Day", m.MaxScanDate.Format(contract.DateFormat), fmt.Sprintf("%d scans", m.MaxScansDay)},
		{"Peak Concurrency", contract.PeakColor.Sprintf("%d engines", cc.MaxActual), fmt.Sprintf("%d optimal", cc.MaxOptimal)},
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("cannot build summary table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("cannot render summary table: %w", err)
	}
	return nil
}
