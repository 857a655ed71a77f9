package outwriter

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// formatHMS renders a whole-second duration as HH:MM:SS. Hours may exceed
// two digits for pathological scans.
func formatHMS(seconds int64) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

// fraction returns count/total in [0,1], 0 for an empty total.
func fraction(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}

// ratio divides two counters as a float, 0 for an empty denominator.
func ratio(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// cellString renders one section cell for CSV output. Fractions keep four
// decimals so spreadsheet-side percent formatting stays exact enough.
func cellString(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case float64:
		return strconv.FormatFloat(c, 'f', 4, 64)
	default:
		return fmt.Sprint(c)
	}
}

// sortedDates returns the map's keys in ascending order.
func sortedDates[V any](m map[time.Time]V) []time.Time {
	dates := make([]time.Time, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// sortedByCount orders tally names by descending count, then name, so
// report rows are deterministic run to run.
func sortedByCount(m map[string]int64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if m[names[i]] != m[names[j]] {
			return m[names[i]] > m[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
