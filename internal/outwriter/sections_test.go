package outwriter

import (
	"testing"
	"time"

	"github.com/sastops/ehc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

// fixtureStats builds a small but fully populated bundle: two scans on
// 2024-03-04 (a Monday) and one on 2024-03-12 (the following Tuesday).
func fixtureStats() *schema.Stats {
	stats := schema.NewStats()
	m := &stats.Aggregate

	m.Scans = 3
	m.YesScans = 2
	m.NoScans = 1
	m.FullScans = 2
	m.IncrementalScans = 1
	m.FirstScan = day(4)
	m.LastScan = day(12)
	m.TotalDays = 9
	m.TotalWeeks = 2
	m.UniqueProjects = 2
	m.AvgTotalScanTime = 3725 // 01:02:05
	m.MaxScansDay = 2
	m.MaxScanDate = day(4)
	m.DayOfWeekScans[time.Monday] = 2
	m.DayOfWeekScans[time.Tuesday] = 1
	m.WeekdayScans = 3

	stats.Languages["Java"] = 2
	stats.Languages["Go"] = 1
	stats.Presets["Default"] = 3
	stats.Origins[schema.OriginKey("Jenkins")].Scans = 2
	stats.Origins[schema.OriginKey("Jenkins")].Percentage = 2.0 / 3
	stats.Origins[schema.OriginKey("cx-CLI")].Scans = 1
	stats.Origins[schema.OriginKey("cx-CLI")].Percentage = 1.0 / 3

	stats.Bins[schema.Bin0to20k].YesScans = 2
	stats.Bins[schema.Bin0to20k].NoScans = 1
	stats.Bins[schema.Bin0to20k].AvgTotalScanTime = 90

	stats.Dates[day(4)] = &schema.DateStats{Scans: 2}
	stats.Dates[day(12)] = &schema.DateStats{Scans: 1}
	return stats
}

func fixtureDaily() map[time.Time]*schema.DayMaxima {
	return map[time.Time]*schema.DayMaxima{
		day(4):  {Actual: 2, Optimal: 3},
		day(12): {Actual: 1, Optimal: 1},
	}
}

func TestBuildSectionsLayout(t *testing.T) {
	sections := BuildSections(fixtureStats(), fixtureDaily())
	require.Len(t, sections, 13)

	wantFiles := []string{
		"01-summary_of_scans.csv",
		"02-scan_metrics.csv",
		"03-scan_duration.csv",
		"04-results_by_severity.csv",
		"05-languages.csv",
		"06-scan_submission_summary.csv",
		"07-day_of_week_scan_average.csv",
		"08-origins.csv",
		"09-presets.csv",
		"10-scan_time_analysis.csv",
		"11-concurrency_analysis.csv",
		"12-scans_by_date.csv",
		"13-scans_by_week.csv",
	}
	wantAnchors := []string{"B", "F", "J", "N", "R", "V", "Y", "AC", "AG", "AK", "AS", "AW", "AZ"}

	for i, sec := range sections {
		assert.Equal(t, wantFiles[i], sec.FileName)
		assert.Equal(t, wantAnchors[i], sec.CellCol)
		assert.Equal(t, 4, sec.CellRow)
		assert.NotEmpty(t, sec.Header)
		for _, row := range sec.Rows {
			assert.LessOrEqual(t, len(row), len(sec.Header), "section %s", sec.Name)
		}
	}
}

func TestSummaryOfScans(t *testing.T) {
	sec := summaryOfScans(fixtureStats())

	assert.Equal(t, []any{"Start Date", "2024-03-04"}, sec.Rows[0])
	assert.Equal(t, []any{"Scans Submitted", int64(3)}, sec.Rows[4])

	// Ratio rows carry the fraction as a third cell.
	assert.Equal(t, "Incremental Scans Submitted", sec.Rows[6][0])
	assert.InDelta(t, 1.0/3, sec.Rows[6][2].(float64), 0.0001)
}

func TestScanDurationFormatsHMS(t *testing.T) {
	sec := scanDuration(fixtureStats())
	assert.Equal(t, []any{"Total Scan Duration", "01:02:05", "00:00:00"}, sec.Rows[0])
}

func TestLanguagesSortedByCount(t *testing.T) {
	sec := languages(fixtureStats())
	require.Len(t, sec.Rows, 2)
	assert.Equal(t, "Java", sec.Rows[0][0])
	assert.Equal(t, "Go", sec.Rows[1][0])
	assert.InDelta(t, 2.0/3, sec.Rows[0][1].(float64), 0.0001)
}

func TestOriginsSkipEmptyAndUseDisplayNames(t *testing.T) {
	sec := origins(fixtureStats())
	require.Len(t, sec.Rows, 2)

	// cx-CLI comes before Jenkins in the fixed enumeration and is printed
	// under its display name.
	assert.Equal(t, "CxCLI", sec.Rows[0][0])
	assert.Equal(t, int64(1), sec.Rows[0][1])
	assert.Equal(t, "Jenkins", sec.Rows[1][0])
	assert.Equal(t, int64(2), sec.Rows[1][1])
}

func TestDayOfWeekAveragesOrder(t *testing.T) {
	sec := dayOfWeekAverages(fixtureStats())
	require.Len(t, sec.Rows, 7)
	assert.Equal(t, "Monday", sec.Rows[0][0])
	assert.Equal(t, int64(2), sec.Rows[0][1])
	assert.Equal(t, "Sunday", sec.Rows[6][0])
	assert.Equal(t, int64(0), sec.Rows[6][1])
}

func TestTimeAnalysisCoversEveryBin(t *testing.T) {
	sec := timeAnalysis(fixtureStats())
	require.Len(t, sec.Rows, len(schema.AllSizeBins))
	require.Len(t, sec.Header, 7)

	assert.Equal(t, "0-20k", sec.Rows[0][0])
	assert.Equal(t, int64(3), sec.Rows[0][1])
	assert.Equal(t, "00:01:30", sec.Rows[0][3])

	// Empty bins still show, with zero counts.
	last := sec.Rows[len(sec.Rows)-1]
	assert.Equal(t, "10M+", last[0])
	assert.Equal(t, int64(0), last[1])
}

func TestConcurrencySectionSortedByDate(t *testing.T) {
	sec := concurrencySection(fixtureDaily())
	require.Len(t, sec.Rows, 2)
	assert.Equal(t, []any{"2024-03-04", 2, 3}, sec.Rows[0])
	assert.Equal(t, []any{"2024-03-12", 1, 1}, sec.Rows[1])
}

func TestScansByWeekRollsUpToMonday(t *testing.T) {
	sec := scansByWeek(fixtureStats())
	require.Len(t, sec.Rows, 2)

	// 2024-03-04 is itself a Monday; 2024-03-12 rolls back to 2024-03-11.
	assert.Equal(t, []any{"2024-03-04", int64(2)}, sec.Rows[0])
	assert.Equal(t, []any{"2024-03-11", int64(1)}, sec.Rows[1])
}

func TestMondayOf(t *testing.T) {
	assert.Equal(t, day(4), mondayOf(day(4)))  // Monday stays
	assert.Equal(t, day(4), mondayOf(day(7)))  // Thursday
	assert.Equal(t, day(4), mondayOf(day(10))) // Sunday closes the week
	assert.Equal(t, day(11), mondayOf(day(11)))
}
