// Package schema has configs, models and constants for all parts of ehc.
package schema

import "time"

// ScannedLanguage is one entry of a scan's language list.
type ScannedLanguage struct {
	LanguageName string `json:"LanguageName"`
}

// ScanRecord represents a single code-scan execution as exported by the
// scan server. Timestamps stay as raw strings; the core parses them on
// demand so that a malformed value can be handled per record.
type ScanRecord struct {
	ScanRequestedOn  string            `json:"ScanRequestedOn"`  // When the scan was requested
	QueuedOn         string            `json:"QueuedOn"`         // When the scan entered the queue
	EngineStartedOn  string            `json:"EngineStartedOn"`  // When the engine picked it up
	EngineFinishedOn *string           `json:"EngineFinishedOn"` // Nil means no code change, no engine run
	ScanCompletedOn  string            `json:"ScanCompletedOn"`  // When the whole scan completed
	IsIncremental    bool              `json:"IsIncremental"`    // Incremental vs full scan
	ProjectID        int64             `json:"ProjectId"`        // Project identifier, may be 0
	ProjectName      string            `json:"ProjectName"`      // Project display name, may be blank
	TotalResults     int64             `json:"TotalVulnerabilities"`
	High             int64             `json:"High"`
	Medium           int64             `json:"Medium"`
	Low              int64             `json:"Low"`
	Info             int64             `json:"Info"`
	LOC              *int64            `json:"LOC"`       // Required; nil marks the record as missing
	FailedLOC        int64             `json:"FailedLOC"` // Lines that could not be parsed
	Origin           string            `json:"Origin"`    // Free-text submission origin
	PresetName       string            `json:"PresetName"`
	ScannedLanguages []ScannedLanguage `json:"ScannedLanguages"`
}

// IsYesScan reports whether the engine actually ran, which is determined
// solely by the presence of the engine-finish timestamp.
func (r *ScanRecord) IsYesScan() bool {
	return r.EngineFinishedOn != nil && *r.EngineFinishedOn != ""
}

// AggregateMetrics holds the flat counters, sums and maxima accumulated over
// one pass of the record stream, plus the averages derived once the stream
// ends. Durations are whole seconds.
type AggregateMetrics struct {
	YesScans       int64 // Scans that fully ran
	NoScans        int64 // No-change scans without an engine run
	MissingScans   int64 // Records dropped for missing LOC
	MalformedScans int64 // Records dropped for unparseable timestamps
	Scans          int64 // YesScans + NoScans; excludes dropped records

	FullScans        int64
	IncrementalScans int64

	SumLOC           int64
	SumFailedLOC     int64
	MaxLOCScan       int64
	MaxFailedLOCScan int64
	MaxLOCDay        int64
	AvgLOCScan       int64 // Derived
	AvgFailedLOCScan int64 // Derived
	AvgLOCDay        int64 // Derived

	SumTotalResults  int64
	SumHighResults   int64
	SumMediumResults int64
	SumLowResults    int64
	SumInfoResults   int64
	MaxTotalResults  int64
	MaxHighResults   int64
	MaxMediumResults int64
	MaxLowResults    int64
	MaxInfoResults   int64
	AvgTotalResults  int64 // Derived
	AvgHighResults   int64 // Derived
	AvgMediumResults int64 // Derived
	AvgLowResults    int64 // Derived
	AvgInfoResults   int64 // Derived

	HighResultScans   int64 // Scans with at least one high finding
	MediumResultScans int64
	LowResultScans    int64
	InfoResultScans   int64
	ZeroResultScans   int64

	SumSourcePullingTime int64
	SumQueueTime         int64
	SumEngineScanTime    int64
	SumTotalScanTime     int64
	MaxSourcePullingTime int64
	MaxQueueTime         int64
	MaxEngineScanTime    int64
	MaxTotalScanTime     int64
	AvgSourcePullingTime int64 // Derived
	AvgQueueTime         int64 // Derived
	AvgEngineScanTime    int64 // Derived
	AvgTotalScanTime     int64 // Derived

	// DayOfWeekScans is indexed by time.Weekday (Sunday = 0).
	DayOfWeekScans [7]int64
	WeekdayScans   int64
	WeekendScans   int64

	MaxScansDay  int64     // Most scans seen on a single date
	MaxScanDate  time.Time // The date achieving MaxScansDay
	FirstScan    time.Time // Date of the earliest scan (UTC midnight)
	LastScan     time.Time // Date of the latest scan (UTC midnight)
	TotalDays    int64     // Derived: last - first + 1
	TotalWeeks   int64     // Derived: ceil(TotalDays / 7)
	ScanDays     int64     // Derived: number of dates with at least one scan
	UniqueProjects int64   // Distinct project id + name pairs
}

// SizeBinStats accumulates duration statistics for one LOC size bin.
type SizeBinStats struct {
	YesScans int64
	NoScans  int64

	SumTotalScanTime     int64
	SumSourcePullingTime int64
	SumQueueTime         int64
	SumEngineScanTime    int64
	MaxTotalScanTime     int64
	MaxSourcePullingTime int64
	MaxQueueTime         int64
	MaxEngineScanTime    int64
	AvgTotalScanTime     int64 // Derived
	AvgSourcePullingTime int64 // Derived
	AvgQueueTime         int64 // Derived
	AvgEngineScanTime    int64 // Derived
}

// DateStats accumulates per-calendar-date counters. Dates are keyed by
// UTC midnight and never merged across dates.
type DateStats struct {
	Scans            int64
	YesScans         int64
	NoScans          int64
	FullScans        int64
	IncrementalScans int64
	SumLOC           int64
	MaxLOC           int64
	SumFailedLOC     int64
	MaxFailedLOC     int64
}

// OriginStats holds the running tally for one canonical origin bucket.
type OriginStats struct {
	Scans      int64
	Percentage float64 // Derived: Scans / AggregateMetrics.Scans
}

// EventKind distinguishes queue occupancy from engine occupancy events.
type EventKind string

// Concurrency event kinds.
const (
	QueueEvent  EventKind = "queue"
	EngineEvent EventKind = "engine"
)

// ConcurrencyEvent is a +1/-1 occupancy change at an instant. Engine
// intervals are pinned to the queued timestamp so that the reconstruction
// answers "how many engines with zero queue delay", not the literal
// observed engine timeline.
type ConcurrencyEvent struct {
	At    time.Time
	Delta int
	Kind  EventKind
}

// ConcurrencySnapshot is the reconstructed state at the start of one fixed
// width grid cell, after applying every event before the cell's end.
type ConcurrencySnapshot struct {
	At            time.Time
	ActiveEngines int
	QueueLength   int
}

// Stats is the full statistics bundle produced by one aggregation pass.
// It is owned by that pass; writers must treat it as read-only.
type Stats struct {
	Aggregate AggregateMetrics
	Languages map[string]int64
	Origins   map[OriginKey]*OriginStats
	Presets   map[string]int64
	Bins      map[SizeBin]*SizeBinStats
	Dates     map[time.Time]*DateStats
	Events    []ConcurrencyEvent
}

// NewStats returns a Stats bundle with every origin bucket and size bin
// pre-created so reports always cover the full fixed enumerations.
func NewStats() *Stats {
	s := &Stats{
		Languages: make(map[string]int64),
		Origins:   make(map[OriginKey]*OriginStats, len(OriginKeys)),
		Presets:   make(map[string]int64),
		Bins:      make(map[SizeBin]*SizeBinStats, len(AllSizeBins)),
		Dates:     make(map[time.Time]*DateStats),
	}
	for _, key := range OriginKeys {
		s.Origins[key] = &OriginStats{}
	}
	for _, bin := range AllSizeBins {
		s.Bins[bin] = &SizeBinStats{}
	}
	return s
}
