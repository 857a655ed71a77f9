package concurrency

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

func at(d, h, m, s int) time.Time {
	return time.Date(2024, 3, d, h, m, s, 0, time.UTC)
}

func TestReconstructSnapshotCount(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		width int
		want  int
	}{
		{"one day of 5s cells", day(4), day(5), 5, 17280},
		{"exact multiple", day(4), day(4).Add(time.Minute), 5, 12},
		{"remainder adds a cell", day(4), day(4).Add(62 * time.Second), 5, 13},
		{"zero span", day(4), day(4), 5, 0},
		{"end before start", day(5), day(4), 5, 0},
		{"bad width", day(4), day(5), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconstruct(nil, tt.start, tt.end, tt.width)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestReconstructSingleScan(t *testing.T) {
	// One engine runs from 00:00:07 to 00:00:19.
	events := []schema.ConcurrencyEvent{
		{At: at(4, 0, 0, 7), Delta: +1, Kind: schema.EngineEvent},
		{At: at(4, 0, 0, 19), Delta: -1, Kind: schema.EngineEvent},
	}
	snaps := Reconstruct(events, day(4), day(4).Add(30*time.Second), 5)
	require.Len(t, snaps, 6)

	// A snapshot reflects every event before its cell's end: the start at
	// 00:00:07 lands in the cell ending 00:00:10 and the stop at 00:00:19
	// in the cell ending 00:00:20.
	engines := make([]int, len(snaps))
	for i, s := range snaps {
		engines[i] = s.ActiveEngines
	}
	assert.Equal(t, []int{0, 1, 1, 0, 0, 0}, engines)
}

func TestReconstructQueueAndEngine(t *testing.T) {
	// Two scans queue at the same time; one engine slot frees up later.
	events := []schema.ConcurrencyEvent{
		{At: at(4, 0, 0, 2), Delta: +1, Kind: schema.QueueEvent},
		{At: at(4, 0, 0, 2), Delta: +1, Kind: schema.QueueEvent},
		{At: at(4, 0, 0, 2), Delta: +1, Kind: schema.EngineEvent},
		{At: at(4, 0, 0, 2), Delta: -1, Kind: schema.QueueEvent},
		{At: at(4, 0, 0, 12), Delta: -1, Kind: schema.QueueEvent},
		{At: at(4, 0, 0, 12), Delta: +1, Kind: schema.EngineEvent},
		{At: at(4, 0, 0, 22), Delta: -1, Kind: schema.EngineEvent},
		{At: at(4, 0, 0, 22), Delta: -1, Kind: schema.EngineEvent},
	}
	snaps := Reconstruct(events, day(4), day(4).Add(25*time.Second), 5)
	require.Len(t, snaps, 5)

	assert.Equal(t, 1, snaps[0].ActiveEngines)
	assert.Equal(t, 1, snaps[0].QueueLength)
	assert.Equal(t, 2, snaps[2].ActiveEngines)
	assert.Equal(t, 0, snaps[2].QueueLength)
	assert.Equal(t, 0, snaps[4].ActiveEngines)
}

func TestReconstructDropsEventsOutsideWindow(t *testing.T) {
	events := []schema.ConcurrencyEvent{
		{At: at(3, 23, 0, 0), Delta: +1, Kind: schema.EngineEvent}, // before window
		{At: at(6, 1, 0, 0), Delta: +1, Kind: schema.EngineEvent},  // after window
	}
	snaps := Reconstruct(events, day(4), day(5), 5)
	for _, s := range snaps {
		assert.Equal(t, 0, s.ActiveEngines)
	}
}

func TestDailyMaxima(t *testing.T) {
	snaps := []schema.ConcurrencySnapshot{
		{At: at(4, 1, 0, 0), ActiveEngines: 2, QueueLength: 1},
		{At: at(4, 2, 0, 0), ActiveEngines: 3, QueueLength: 0},
		{At: at(5, 1, 0, 0), ActiveEngines: 1, QueueLength: 4},
	}
	daily := DailyMaxima(snaps)
	require.Len(t, daily, 2)

	assert.Equal(t, 3, daily[day(4)].Actual)
	assert.Equal(t, 3, daily[day(4)].Optimal) // max of 2+1 and 3+0
	assert.Equal(t, 1, daily[day(5)].Actual)
	assert.Equal(t, 5, daily[day(5)].Optimal)
}

func TestSummarizeTracksAllPeakDates(t *testing.T) {
	daily := map[time.Time]*schema.DayMaxima{
		day(4): {Actual: 3, Optimal: 5},
		day(5): {Actual: 3, Optimal: 4},
		day(6): {Actual: 2, Optimal: 5},
	}
	sum := Summarize(daily)

	assert.Equal(t, 3, sum.MaxActual)
	assert.Equal(t, []time.Time{day(4), day(5)}, sum.ActualDates)
	assert.Equal(t, 5, sum.MaxOptimal)
	assert.Equal(t, []time.Time{day(4), day(6)}, sum.OptimalDates)
}
