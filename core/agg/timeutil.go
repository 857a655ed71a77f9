package agg

import (
	"fmt"
	"math"
	"time"
)

// instantLayouts are the ISO8601 variants accepted from the scan export,
// tried in order. Layouts without a zone are interpreted as UTC so that
// subtraction never depends on the process-local timezone.
var instantLayouts = []struct {
	layout string
	zoned  bool
}{
	{time.RFC3339Nano, true},
	{"2006-01-02T15:04:05.999999999", false},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02", false},
}

// ParseInstant parses a timestamp string to an absolute point in time.
func ParseInstant(value string) (time.Time, error) {
	for _, l := range instantLayouts {
		if l.zoned {
			if t, err := time.Parse(l.layout, value); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(l.layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("malformed timestamp %q", value)
}

// DurationSeconds computes end - start in whole seconds, rounded up, never
// negative. Either side failing to parse is reported as an error so the
// caller can drop the record.
func DurationSeconds(start, end string) (int64, error) {
	s, err := ParseInstant(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseInstant(end)
	if err != nil {
		return 0, err
	}
	secs := int64(math.Ceil(e.Sub(s).Seconds()))
	if secs < 0 {
		secs = 0
	}
	return secs, nil
}

// DateOf truncates an instant to its calendar date at UTC midnight.
// All per-date maps are keyed by values produced here.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
