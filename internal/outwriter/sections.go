package outwriter

import (
	"time"

	"github.com/sastops/ehc/internal/contract"
	"github.com/sastops/ehc/schema"
)

// Spreadsheet cell anchors for each section on the template's Data sheet.
// These match the template layout and are a contract with it.
const anchorRow = 4

// BuildSections renders the statistics bundle and the concurrency daily
// maxima into the 13 fixed report sections, in order. Sections only read
// from the bundle; nothing here mutates it.
func BuildSections(stats *schema.Stats, daily map[time.Time]*schema.DayMaxima) []schema.Section {
	return []schema.Section{
		summaryOfScans(stats),
		scanMetrics(stats),
		scanDuration(stats),
		resultsBySeverity(stats),
		languages(stats),
		submissionSummary(stats),
		dayOfWeekAverages(stats),
		origins(stats),
		presets(stats),
		timeAnalysis(stats),
		concurrencySection(daily),
		scansByDate(stats),
		scansByWeek(stats),
	}
}

func summaryOfScans(stats *schema.Stats) schema.Section {
	m := &stats.Aggregate
	rows := [][]any{
		{"Start Date", m.FirstScan.Format(contract.DateFormat)},
		{"End Date", m.LastScan.Format(contract.DateFormat)},
		{"Days", m.TotalDays},
		{"Weeks", m.TotalWeeks},
		{"Scans Submitted", m.Scans},
		{"Full Scans Submitted", m.FullScans, fraction(m.FullScans, m.Scans)},
		{"Incremental Scans Submitted", m.IncrementalScans, fraction(m.IncrementalScans, m.Scans)},
		{"No-Change Scans", m.NoScans, fraction(m.NoScans, m.Scans)},
		{"Scans with High Results", m.HighResultScans, fraction(m.HighResultScans, m.Scans)},
		{"Scans with Medium Results", m.MediumResultScans, fraction(m.MediumResultScans, m.Scans)},
		{"Scans with Low Results", m.LowResultScans, fraction(m.LowResultScans, m.Scans)},
		{"Scans with Informational Results", m.InfoResultScans, fraction(m.InfoResultScans, m.Scans)},
		{"Scans with Zero Results", m.ZeroResultScans, fraction(m.ZeroResultScans, m.Scans)},
		{"Unique Projects Scanned", m.UniqueProjects},
	}
	return schema.Section{
		Name:     "summary_of_scans",
		FileName: "01-summary_of_scans.csv",
		Header:   []string{"Description", "Value", "%"},
		Rows:     rows,
		CellCol:  "B",
		CellRow:  anchorRow,
	}
}

func scanMetrics(stats *schema.Stats) schema.Section {
	m := &stats.Aggregate
	rows := [][]any{
		{"LOC per Scan", m.AvgLOCScan, m.MaxLOCScan},
		{"Failed LOC per Scan", m.AvgFailedLOCScan, m.MaxFailedLOCScan},
		{"Daily LOC", m.AvgLOCDay, m.MaxLOCDay},
	}
	return schema.Section{
		Name:     "scan_metrics",
		FileName: "02-scan_metrics.csv",
		Header:   []string{"Description", "Average", "Max"},
		Rows:     rows,
		CellCol:  "F",
		CellRow:  anchorRow,
	}
}

func scanDuration(stats *schema.Stats) schema.Section {
	m := &stats.Aggregate
	rows := [][]any{
		{"Total Scan Duration", formatHMS(m.AvgTotalScanTime), formatHMS(m.MaxTotalScanTime)},
		{"Engine Scan Duration", formatHMS(m.AvgEngineScanTime), formatHMS(m.MaxEngineScanTime)},
		{"Queued Duration", formatHMS(m.AvgQueueTime), formatHMS(m.MaxQueueTime)},
		{"Source Pulling Duration", formatHMS(m.AvgSourcePullingTime), formatHMS(m.MaxSourcePullingTime)},
	}
	return schema.Section{
		Name:     "scan_duration",
		FileName: "03-scan_duration.csv",
		Header:   []string{"Description", "Average", "Max"},
		Rows:     rows,
		CellCol:  "J",
		CellRow:  anchorRow,
	}
}

func resultsBySeverity(stats *schema.Stats) schema.Section {
	m := &stats.Aggregate
	rows := [][]any{
		{"Total", m.AvgTotalResults, m.MaxTotalResults},
		{"High", m.AvgHighResults, m.MaxHighResults},
		{"Medium", m.AvgMediumResults, m.MaxMediumResults},
		{"Low", m.AvgLowResults, m.MaxLowResults},
		{"Informational", m.AvgInfoResults, m.MaxInfoResults},
	}
	return schema.Section{
		Name:     "results_by_severity",
		FileName: "04-results_by_severity.csv",
		Header:   []string{"Description", "Average", "Max"},
		Rows:     rows,
		CellCol:  "N",
		CellRow:  anchorRow,
	}
}

func languages(stats *schema.Stats) schema.Section {
	m := &stats.Aggregate
	rows := make([][]any, 0, len(stats.Languages))
	for _, name := range sortedByCount(stats.Languages) {
		count := stats.Languages[name]
		rows = append(rows, []any{name, fraction(count, m.Scans), count})
	}
	return schema.Section{
		Name:     "languages",
		FileName: "05-languages.csv",
		Header:   []string{"Language", "%", "Scans"},
		Rows:     rows,
		CellCol:  "R",
		CellRow:  anchorRow,
	}
}

func submissionSummary(stats *schema.Stats) schema.Section {
	m := &stats.Aggregate
	rows := [][]any{
		{"Average Scans Submitted per Week", ratio(m.Scans, m.TotalWeeks)},
		{"Average Scans Submitted per Day", ratio(m.Scans, m.TotalDays)},
		{"Average Scans Submitted per Weekday", ratio(m.WeekdayScans, 5*m.TotalWeeks)},
		{"Average Scans Submitted per Weekend Day", ratio(m.WeekendScans, 2*m.TotalWeeks)},
		{"Max Daily Scans Submitted", m.MaxScansDay},
		{"Date of Max Daily Scans", m.MaxScanDate.Format(contract.DateFormat)},
	}
	return schema.Section{
		Name:     "scan_submission_summary",
		FileName: "06-scan_submission_summary.csv",
		Header:   []string{"Description", "Value"},
		Rows:     rows,
		CellCol:  "V",
		CellRow:  anchorRow,
	}
}

func dayOfWeekAverages(stats *schema.Stats) schema.Section {
	m := &stats.Aggregate
	days := []struct {
		label string
		wd    time.Weekday
	}{
		{"Monday", time.Monday},
		{"Tuesday", time.Tuesday},
		{"Wednesday", time.Wednesday},
		{"Thursday", time.Thursday},
		{"Friday", time.Friday},
		{"Saturday", time.Saturday},
		{"Sunday", time.Sunday},
	}
	rows := make([][]any, 0, len(days))
	for _, d := range days {
		count := m.DayOfWeekScans[d.wd]
		rows = append(rows, []any{d.label, count, fraction(count, m.Scans)})
	}
	return schema.Section{
		Name:     "day_of_week_scan_average",
		FileName: "07-day_of_week_scan_average.csv",
		Header:   []string{"Day of Week", "Scans", "%"},
		Rows:     rows,
		CellCol:  "Y",
		CellRow:  anchorRow,
	}
}

func origins(stats *schema.Stats) schema.Section {
	rows := make([][]any, 0, len(schema.OriginKeys))
	for _, key := range schema.OriginKeys {
		o := stats.Origins[key]
		if o.Scans == 0 {
			continue
		}
		rows = append(rows, []any{schema.OriginNames[key], o.Scans, o.Percentage})
	}
	return schema.Section{
		Name:     "origins",
		FileName: "08-origins.csv",
		Header:   []string{"Origin", "Scans", "%"},
		Rows:     rows,
		CellCol:  "AC",
		CellRow:  anchorRow,
	}
}

func presets(stats *schema.Stats) schema.Section {
	m := &stats.Aggregate
	rows := make([][]any, 0, len(stats.Presets))
	for _, name := range sortedByCount(stats.Presets) {
		count := stats.Presets[name]
		rows = append(rows, []any{name, count, fraction(count, m.Scans)})
	}
	return schema.Section{
		Name:     "presets",
		FileName: "09-presets.csv",
		Header:   []string{"Preset", "Scans", "%"},
		Rows:     rows,
		CellCol:  "AG",
		CellRow:  anchorRow,
	}
}

func timeAnalysis(stats *schema.Stats) schema.Section {
	m := &stats.Aggregate
	rows := make([][]any, 0, len(schema.AllSizeBins))
	for _, key := range schema.AllSizeBins {
		bin := stats.Bins[key]
		all := bin.YesScans + bin.NoScans
		rows = append(rows, []any{
			string(key),
			all,
			fraction(all, m.Scans),
			formatHMS(bin.AvgTotalScanTime),
			formatHMS(bin.AvgSourcePullingTime),
			formatHMS(bin.AvgQueueTime),
			formatHMS(bin.AvgEngineScanTime),
		})
	}
	return schema.Section{
		Name:     "scan_time_analysis",
		FileName: "10-scan_time_analysis.csv",
		Header:   []string{"LOC Range", "Scans", "% Scans", "Avg Total Time", "Avg Source Pulling Time", "Avg Queue Time", "Avg Engine Scan Time"},
		Rows:     rows,
		CellCol:  "AK",
		CellRow:  anchorRow,
	}
}

func concurrencySection(daily map[time.Time]*schema.DayMaxima) schema.Section {
	rows := make([][]any, 0, len(daily))
	for _, date := range sortedDates(daily) {
		rec := daily[date]
		rows = append(rows, []any{date.Format(contract.DateFormat), rec.Actual, rec.Optimal})
	}
	return schema.Section{
		Name:     "concurrency_analysis",
		FileName: "11-concurrency_analysis.csv",
		Header:   []string{"Date", "Max Actual", "Max Optimal"},
		Rows:     rows,
		CellCol:  "AS",
		CellRow:  anchorRow,
	}
}

func scansByDate(stats *schema.Stats) schema.Section {
	rows := make([][]any, 0, len(stats.Dates))
	for _, date := range sortedDates(stats.Dates) {
		rows = append(rows, []any{date.Format(contract.DateFormat), stats.Dates[date].Scans})
	}
	return schema.Section{
		Name:     "scans_by_date",
		FileName: "12-scans_by_date.csv",
		Header:   []string{"Date", "Scans"},
		Rows:     rows,
		CellCol:  "AW",
		CellRow:  anchorRow,
	}
}

// scansByWeek rolls daily counts up into ISO weeks keyed by each week's
// Monday.
func scansByWeek(stats *schema.Stats) schema.Section {
	weekly := make(map[time.Time]int64)
	for date, ds := range stats.Dates {
		weekly[mondayOf(date)] += ds.Scans
	}
	rows := make([][]any, 0, len(weekly))
	for _, monday := range sortedDates(weekly) {
		rows = append(rows, []any{monday.Format(contract.DateFormat), weekly[monday]})
	}
	return schema.Section{
		Name:     "scans_by_week",
		FileName: "13-scans_by_week.csv",
		Header:   []string{"Week", "Scans"},
		Rows:     rows,
		CellCol:  "AZ",
		CellRow:  anchorRow,
	}
}

// mondayOf returns the Monday of the calendar week containing date.
func mondayOf(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return date.AddDate(0, 0, -offset)
}
