package schema

import "time"

// Section is one rendered report table: a fixed header plus ordered rows.
// Cells keep their native types so the CSV writer can format them and the
// spreadsheet writer can set typed cell values.
type Section struct {
	Name     string  // Machine-friendly section name, used in the filename
	FileName string  // Numbered CSV filename, e.g. "01-summary_of_scans.csv"
	Header   []string
	Rows     [][]any
	CellCol  string // Column letter anchor on the spreadsheet template
	CellRow  int    // Row anchor on the spreadsheet template
}

// DayMaxima holds the per-date concurrency maxima reduced from snapshots.
type DayMaxima struct {
	Actual  int // Peak simultaneously active engines
	Optimal int // Peak engines + queued, i.e. zero-queue-delay demand
}

// ConcurrencySummary is the overall reduction of the daily maxima.
type ConcurrencySummary struct {
	MaxActual    int
	MaxOptimal   int
	ActualDates  []time.Time // Every date achieving MaxActual
	OptimalDates []time.Time // Every date achieving MaxOptimal
}

// RunSummary is one row of the local run-history store: the headline
// numbers of a completed analysis run.
type RunSummary struct {
	RunID         int64
	RanAt         time.Time
	InputFile     string
	Customer      string
	Records       int64
	Scans         int64
	YesScans      int64
	NoScans       int64
	MissingScans  int64
	FirstScan     time.Time
	LastScan      time.Time
	SumLOC        int64
	MaxConcurrent int
	MaxOptimal    int
}
