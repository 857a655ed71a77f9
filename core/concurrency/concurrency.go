// Package concurrency reconstructs engine and queue occupancy over time
// from the sparse start/stop events emitted by the aggregation engine.
package concurrency

import (
	"sort"
	"time"

	"github.com/sastops/ehc/schema"
)

// Reconstruct replays events chronologically against a fixed-width grid
// spanning [windowStart, windowEnd] midnights and returns one snapshot per
// grid cell, exactly ceil((end-start)/width) of them. Events outside the
// window are discarded; ties keep their emission order so a queue-leave and
// an engine-start at the same instant never flip signs. Each snapshot
// reflects state as of its end-exclusive cell boundary; cells without
// events carry the previous state forward.
func Reconstruct(events []schema.ConcurrencyEvent, windowStart, windowEnd time.Time, widthSeconds int) []schema.ConcurrencySnapshot {
	if widthSeconds <= 0 || windowEnd.Before(windowStart) {
		return nil
	}

	filtered := make([]schema.ConcurrencyEvent, 0, len(events))
	for _, ev := range events {
		if ev.At.Before(windowStart) || ev.At.After(windowEnd) {
			continue
		}
		filtered = append(filtered, ev)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].At.Before(filtered[j].At)
	})

	width := time.Duration(widthSeconds) * time.Second
	span := windowEnd.Sub(windowStart)
	count := int(span / width)
	if span%width != 0 {
		count++
	}

	snapshots := make([]schema.ConcurrencySnapshot, 0, count)
	activeEngines := 0
	queueLength := 0
	idx := 0

	for cell := 0; cell < count; cell++ {
		cellStart := windowStart.Add(time.Duration(cell) * width)
		cellEnd := cellStart.Add(width)

		for idx < len(filtered) && filtered[idx].At.Before(cellEnd) {
			switch filtered[idx].Kind {
			case schema.EngineEvent:
				activeEngines += filtered[idx].Delta
			case schema.QueueEvent:
				queueLength += filtered[idx].Delta
			}
			idx++
		}

		snapshots = append(snapshots, schema.ConcurrencySnapshot{
			At:            cellStart,
			ActiveEngines: activeEngines,
			QueueLength:   queueLength,
		})
	}
	return snapshots
}

// DailyMaxima reduces snapshots to per-calendar-date maxima of the actual
// active-engine count and of the optimal concurrency, where optimal is
// engines plus queued: with no queueing everything would run immediately.
func DailyMaxima(snapshots []schema.ConcurrencySnapshot) map[time.Time]*schema.DayMaxima {
	daily := make(map[time.Time]*schema.DayMaxima)
	for _, snap := range snapshots {
		y, m, d := snap.At.UTC().Date()
		date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		rec, ok := daily[date]
		if !ok {
			rec = &schema.DayMaxima{}
			daily[date] = rec
		}
		optimal := snap.ActiveEngines + snap.QueueLength
		if snap.ActiveEngines > rec.Actual {
			rec.Actual = snap.ActiveEngines
		}
		if optimal > rec.Optimal {
			rec.Optimal = optimal
		}
	}
	return daily
}

// Summarize reduces the daily maxima to the overall peaks, tracking every
// date that achieves each peak.
func Summarize(daily map[time.Time]*schema.DayMaxima) schema.ConcurrencySummary {
	var sum schema.ConcurrencySummary

	dates := make([]time.Time, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	for _, d := range dates {
		rec := daily[d]
		if rec.Actual > sum.MaxActual {
			sum.MaxActual = rec.Actual
			sum.ActualDates = sum.ActualDates[:0]
		}
		if rec.Actual == sum.MaxActual {
			sum.ActualDates = append(sum.ActualDates, d)
		}
		if rec.Optimal > sum.MaxOptimal {
			sum.MaxOptimal = rec.Optimal
			sum.OptimalDates = sum.OptimalDates[:0]
		}
		if rec.Optimal == sum.MaxOptimal {
			sum.OptimalDates = append(sum.OptimalDates, d)
		}
	}
	return sum
}
