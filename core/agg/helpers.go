package agg

import (
	"math"
	"sort"
	"strconv"
	"time"
)

// ceilDiv divides non-negative integers rounding up, returning 0 for an
// empty denominator since an empty bucket is a legitimate state to report.
func ceilDiv(sum, count int64) int64 {
	if count == 0 {
		return 0
	}
	return (sum + count - 1) / count
}

// roundDiv divides rounding half away from zero, guarding zero denominators.
func roundDiv(sum, count int64) int64 {
	if count == 0 {
		return 0
	}
	return int64(math.Round(float64(sum) / float64(count)))
}

// fraction returns count/total as a value in [0,1], 0 when total is empty.
func fraction(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}

// projectKey builds the unique-project identity. Id alone is not enough
// because exports sometimes carry a zero id with a real name, or vice versa.
func projectKey(id int64, name string) string {
	return strconv.FormatInt(id, 10) + "_" + name
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
