// Package agg has the single-pass aggregation engine for scan records.
package agg

import (
	"time"

	"github.com/sastops/ehc/schema"
)

// scanDurations holds the four parsed duration categories of one record.
// Parsing all of them happens before any counter is touched so a record
// with one malformed timestamp leaves every aggregate untouched.
type scanDurations struct {
	sourcePulling int64
	queue         int64
	engine        int64 // Only meaningful for yes-scans
	total         int64
	queuedAt      time.Time
	engineStartAt time.Time
}

// Aggregator consumes scan records one at a time and accumulates the full
// statistics bundle. It owns the bundle exclusively until Finalize.
type Aggregator struct {
	stats    *schema.Stats
	projects map[string]struct{}
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{
		stats:    schema.NewStats(),
		projects: make(map[string]struct{}),
	}
}

// Add folds one record into the running aggregates. Records missing LOC or
// carrying unparseable required timestamps are counted and otherwise
// skipped entirely, keeping every remaining aggregate mutually consistent.
func (a *Aggregator) Add(rec *schema.ScanRecord) {
	m := &a.stats.Aggregate

	if rec.LOC == nil {
		m.MissingScans++
		return
	}
	loc := *rec.LOC

	scanDate, err := parseScanDate(rec.ScanRequestedOn)
	if err != nil {
		m.MalformedScans++
		return
	}
	dur, err := parseDurations(rec)
	if err != nil {
		m.MalformedScans++
		return
	}

	m.Scans++
	yes := rec.IsYesScan()
	if yes {
		m.YesScans++
	} else {
		m.NoScans++
	}
	if rec.IsIncremental {
		m.IncrementalScans++
	} else {
		m.FullScans++
	}

	a.addVolume(rec, loc)
	a.addSeverities(rec)
	a.addDurations(dur, yes)
	a.addCalendar(scanDate)
	a.addProject(rec)
	a.addLanguages(rec)
	a.addOrigin(rec)
	a.addPreset(rec)
	a.addBin(loc, dur, yes)
	a.addDate(scanDate, rec, loc, yes)
	a.addEvents(dur, yes)
}

// Finalize computes every derived statistic that needs the complete stream
// and returns the finished bundle. Reading derived fields before Finalize
// is undefined.
func (a *Aggregator) Finalize() *schema.Stats {
	m := &a.stats.Aggregate

	if !m.LastScan.IsZero() {
		m.TotalDays = int64(m.LastScan.Sub(m.FirstScan).Hours()/24) + 1
		m.TotalWeeks = ceilDiv(m.TotalDays, 7)
	}
	m.ScanDays = int64(len(a.stats.Dates))

	m.AvgLOCScan = ceilDiv(m.SumLOC, m.Scans)
	m.AvgFailedLOCScan = ceilDiv(m.SumFailedLOC, m.Scans)
	m.AvgLOCDay = ceilDiv(m.SumLOC, m.TotalDays)

	a.reduceDates()
	a.reduceBins()

	m.AvgSourcePullingTime = ceilDiv(m.SumSourcePullingTime, m.Scans)
	m.AvgQueueTime = ceilDiv(m.SumQueueTime, m.Scans)
	m.AvgTotalScanTime = ceilDiv(m.SumTotalScanTime, m.Scans)
	m.AvgEngineScanTime = ceilDiv(m.SumEngineScanTime, m.YesScans)

	m.AvgTotalResults = ceilDiv(m.SumTotalResults, m.Scans)
	m.AvgHighResults = roundDiv(m.SumHighResults, m.Scans)
	m.AvgMediumResults = roundDiv(m.SumMediumResults, m.Scans)
	m.AvgLowResults = roundDiv(m.SumLowResults, m.Scans)
	m.AvgInfoResults = roundDiv(m.SumInfoResults, m.Scans)

	for _, o := range a.stats.Origins {
		o.Percentage = fraction(o.Scans, m.Scans)
	}

	return a.stats
}

// addVolume updates the LOC sums and maxima.
func (a *Aggregator) addVolume(rec *schema.ScanRecord, loc int64) {
	m := &a.stats.Aggregate
	m.SumLOC += loc
	m.SumFailedLOC += rec.FailedLOC
	m.MaxLOCScan = max(m.MaxLOCScan, loc)
	m.MaxFailedLOCScan = max(m.MaxFailedLOCScan, rec.FailedLOC)
}

// addSeverities updates the finding-severity sums, maxima and has-severity
// scan counts.
func (a *Aggregator) addSeverities(rec *schema.ScanRecord) {
	m := &a.stats.Aggregate
	m.SumTotalResults += rec.TotalResults
	m.SumHighResults += rec.High
	m.SumMediumResults += rec.Medium
	m.SumLowResults += rec.Low
	m.SumInfoResults += rec.Info
	m.MaxTotalResults = max(m.MaxTotalResults, rec.TotalResults)
	m.MaxHighResults = max(m.MaxHighResults, rec.High)
	m.MaxMediumResults = max(m.MaxMediumResults, rec.Medium)
	m.MaxLowResults = max(m.MaxLowResults, rec.Low)
	m.MaxInfoResults = max(m.MaxInfoResults, rec.Info)

	if rec.High > 0 {
		m.HighResultScans++
	}
	if rec.Medium > 0 {
		m.MediumResultScans++
	}
	if rec.Low > 0 {
		m.LowResultScans++
	}
	if rec.Info > 0 {
		m.InfoResultScans++
	}
	if rec.TotalResults == 0 {
		m.ZeroResultScans++
	}
}

// addDurations updates the four duration categories. Engine time counts
// only for yes-scans.
func (a *Aggregator) addDurations(dur scanDurations, yes bool) {
	m := &a.stats.Aggregate
	m.SumSourcePullingTime += dur.sourcePulling
	m.MaxSourcePullingTime = max(m.MaxSourcePullingTime, dur.sourcePulling)
	m.SumQueueTime += dur.queue
	m.MaxQueueTime = max(m.MaxQueueTime, dur.queue)
	m.SumTotalScanTime += dur.total
	m.MaxTotalScanTime = max(m.MaxTotalScanTime, dur.total)
	if yes {
		m.SumEngineScanTime += dur.engine
		m.MaxEngineScanTime = max(m.MaxEngineScanTime, dur.engine)
	}
}

// addCalendar updates weekday counters and the first/last scan dates.
func (a *Aggregator) addCalendar(scanDate time.Time) {
	m := &a.stats.Aggregate
	wd := scanDate.Weekday()
	m.DayOfWeekScans[wd]++
	if wd == time.Saturday || wd == time.Sunday {
		m.WeekendScans++
	} else {
		m.WeekdayScans++
	}
	if m.FirstScan.IsZero() || scanDate.Before(m.FirstScan) {
		m.FirstScan = scanDate
	}
	if scanDate.After(m.LastScan) {
		m.LastScan = scanDate
	}
}

// addProject counts the first occurrence of each project identity. The key
// concatenates id and name because either can be blank on its own.
func (a *Aggregator) addProject(rec *schema.ScanRecord) {
	pid := projectKey(rec.ProjectID, rec.ProjectName)
	if _, seen := a.projects[pid]; !seen {
		a.projects[pid] = struct{}{}
		a.stats.Aggregate.UniqueProjects++
	}
}

// addLanguages tallies each distinct language once per record, skipping the
// synthetic "Common" language.
func (a *Aggregator) addLanguages(rec *schema.ScanRecord) {
	var seen map[string]struct{}
	for _, lang := range rec.ScannedLanguages {
		name := lang.LanguageName
		if name == "" || name == "Common" {
			continue
		}
		if seen == nil {
			seen = make(map[string]struct{}, len(rec.ScannedLanguages))
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		a.stats.Languages[name]++
	}
}

// addOrigin folds the free-text origin into its canonical bucket.
func (a *Aggregator) addOrigin(rec *schema.ScanRecord) {
	a.stats.Origins[ClassifyOrigin(rec.Origin)].Scans++
}

// addPreset tallies the preset name as-is.
func (a *Aggregator) addPreset(rec *schema.ScanRecord) {
	a.stats.Presets[rec.PresetName]++
}

// addBin updates the size bin the record's LOC falls into.
func (a *Aggregator) addBin(loc int64, dur scanDurations, yes bool) {
	bin := a.stats.Bins[SizeBinFor(loc)]
	bin.SumSourcePullingTime += dur.sourcePulling
	bin.SumQueueTime += dur.queue
	bin.SumTotalScanTime += dur.total
	bin.MaxSourcePullingTime = max(bin.MaxSourcePullingTime, dur.sourcePulling)
	bin.MaxQueueTime = max(bin.MaxQueueTime, dur.queue)
	bin.MaxTotalScanTime = max(bin.MaxTotalScanTime, dur.total)
	if yes {
		bin.YesScans++
		bin.SumEngineScanTime += dur.engine
		bin.MaxEngineScanTime = max(bin.MaxEngineScanTime, dur.engine)
	} else {
		bin.NoScans++
	}
}

// addDate updates the lazily created per-date bucket.
func (a *Aggregator) addDate(scanDate time.Time, rec *schema.ScanRecord, loc int64, yes bool) {
	ds, ok := a.stats.Dates[scanDate]
	if !ok {
		ds = &schema.DateStats{}
		a.stats.Dates[scanDate] = ds
	}
	ds.Scans++
	if yes {
		ds.YesScans++
	} else {
		ds.NoScans++
	}
	if rec.IsIncremental {
		ds.IncrementalScans++
	} else {
		ds.FullScans++
	}
	ds.SumLOC += loc
	ds.MaxLOC = max(ds.MaxLOC, loc)
	ds.SumFailedLOC += rec.FailedLOC
	ds.MaxFailedLOC = max(ds.MaxFailedLOC, rec.FailedLOC)
}

// addEvents appends the record's concurrency events: a queue interval from
// QueuedOn to EngineStartedOn, and for yes-scans an engine interval of the
// actual engine duration pinned to start at QueuedOn. The pinning rebuilds
// a zero-queue-delay timeline rather than the observed engine timeline.
func (a *Aggregator) addEvents(dur scanDurations, yes bool) {
	a.stats.Events = append(a.stats.Events,
		schema.ConcurrencyEvent{At: dur.queuedAt, Delta: +1, Kind: schema.QueueEvent},
		schema.ConcurrencyEvent{At: dur.engineStartAt, Delta: -1, Kind: schema.QueueEvent},
	)
	if yes {
		finish := dur.queuedAt.Add(time.Duration(dur.engine) * time.Second)
		a.stats.Events = append(a.stats.Events,
			schema.ConcurrencyEvent{At: dur.queuedAt, Delta: +1, Kind: schema.EngineEvent},
			schema.ConcurrencyEvent{At: finish, Delta: -1, Kind: schema.EngineEvent},
		)
	}
}

// reduceDates derives the max-LOC and max-scans per day figures. Dates are
// walked in ascending order so a tie keeps the earliest date.
func (a *Aggregator) reduceDates() {
	m := &a.stats.Aggregate
	for _, date := range sortedDates(a.stats.Dates) {
		ds := a.stats.Dates[date]
		m.MaxLOCDay = max(m.MaxLOCDay, ds.SumLOC)
		if ds.Scans > m.MaxScansDay {
			m.MaxScansDay = ds.Scans
			m.MaxScanDate = date
		}
	}
}

// reduceBins derives each bin's averages. Pulling, queue and total times
// average over all scans in the bin; engine time averages over yes-scans
// only. Empty denominators leave the average at 0.
func (a *Aggregator) reduceBins() {
	for _, bin := range a.stats.Bins {
		all := bin.YesScans + bin.NoScans
		bin.AvgSourcePullingTime = ceilDiv(bin.SumSourcePullingTime, all)
		bin.AvgQueueTime = ceilDiv(bin.SumQueueTime, all)
		bin.AvgTotalScanTime = ceilDiv(bin.SumTotalScanTime, all)
		bin.AvgEngineScanTime = ceilDiv(bin.SumEngineScanTime, bin.YesScans)
	}
}

// parseScanDate extracts the calendar date a scan was requested on.
func parseScanDate(requestedOn string) (time.Time, error) {
	t, err := ParseInstant(requestedOn)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// parseDurations computes all four duration categories up front. Engine
// duration is computed only when the finish timestamp is present.
func parseDurations(rec *schema.ScanRecord) (scanDurations, error) {
	var dur scanDurations
	var err error

	if dur.sourcePulling, err = DurationSeconds(rec.ScanRequestedOn, rec.QueuedOn); err != nil {
		return dur, err
	}
	if dur.queue, err = DurationSeconds(rec.QueuedOn, rec.EngineStartedOn); err != nil {
		return dur, err
	}
	if dur.total, err = DurationSeconds(rec.ScanRequestedOn, rec.ScanCompletedOn); err != nil {
		return dur, err
	}
	if rec.IsYesScan() {
		if dur.engine, err = DurationSeconds(rec.EngineStartedOn, *rec.EngineFinishedOn); err != nil {
			return dur, err
		}
	}
	if dur.queuedAt, err = ParseInstant(rec.QueuedOn); err != nil {
		return dur, err
	}
	if dur.engineStartAt, err = ParseInstant(rec.EngineStartedOn); err != nil {
		return dur, err
	}
	return dur, nil
}
