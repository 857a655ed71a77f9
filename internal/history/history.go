// Package history keeps a local record of completed analysis runs so
// successive health checks of the same environment can be compared.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sastops/ehc/internal/contract"
	"github.com/sastops/ehc/schema"

	// SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"
)

// Table name for run history.
const runsTable = "ehc_runs"

// Store is the SQLite-backed history store.
type Store struct {
	db *sql.DB
}

var _ contract.HistoryStore = &Store{}     // Compile-time check
var _ contract.HistoryStore = &NoopStore{} // Compile-time check

// NewStore opens (or creates) the history database. An empty path uses the
// default location under the user's home directory.
func NewStore(backend schema.HistoryBackend, dbPath string) (contract.HistoryStore, error) {
	if backend == schema.NoneHistory {
		return &NoopStore{}, nil
	}

	if dbPath == "" {
		dbPath = defaultDBPath()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open history database at %q: %w", dbPath, err)
	}
	// Limit SQLite to a single open connection to avoid "database is locked" errors
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cannot connect to history database at %q: %w", dbPath, err)
	}
	if err := createRunsTable(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cannot create history table: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts one completed run.
func (s *Store) Record(run *schema.RunSummary) error {
	_, err := s.db.Exec(`INSERT INTO `+runsTable+`
		(ran_at, input_file, customer, records, scans, yes_scans, no_scans, missing_scans,
		 first_scan, last_scan, sum_loc, max_concurrent, max_optimal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RanAt.UTC().Format(time.RFC3339),
		run.InputFile,
		run.Customer,
		run.Records,
		run.Scans,
		run.YesScans,
		run.NoScans,
		run.MissingScans,
		run.FirstScan.Format(contract.DateFormat),
		run.LastScan.Format(contract.DateFormat),
		run.SumLOC,
		run.MaxConcurrent,
		run.MaxOptimal,
	)
	if err != nil {
		return fmt.Errorf("cannot record run: %w", err)
	}
	return nil
}

// List returns every recorded run, newest first.
func (s *Store) List() ([]schema.RunSummary, error) {
	rows, err := s.db.Query(`SELECT run_id, ran_at, input_file, customer, records, scans,
		yes_scans, no_scans, missing_scans, first_scan, last_scan, sum_loc,
		max_concurrent, max_optimal
		FROM ` + runsTable + ` ORDER BY run_id DESC`)
	if err != nil {
		return nil, fmt.Errorf("cannot list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []schema.RunSummary
	for rows.Next() {
		var run schema.RunSummary
		var ranAt, firstScan, lastScan string
		if err := rows.Scan(&run.RunID, &ranAt, &run.InputFile, &run.Customer,
			&run.Records, &run.Scans, &run.YesScans, &run.NoScans, &run.MissingScans,
			&firstScan, &lastScan, &run.SumLOC, &run.MaxConcurrent, &run.MaxOptimal); err != nil {
			return nil, fmt.Errorf("cannot scan run row: %w", err)
		}
		run.RanAt, _ = time.Parse(time.RFC3339, ranAt)
		run.FirstScan, _ = time.Parse(contract.DateFormat, firstScan)
		run.LastScan, _ = time.Parse(contract.DateFormat, lastScan)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Clear deletes all recorded runs.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM ` + runsTable); err != nil {
		return fmt.Errorf("cannot clear runs: %w", err)
	}
	return nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// createRunsTable creates the history schema if it does not exist.
func createRunsTable(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + runsTable + ` (
		run_id INTEGER PRIMARY KEY AUTOINCREMENT,
		ran_at TEXT NOT NULL,
		input_file TEXT NOT NULL,
		customer TEXT NOT NULL DEFAULT '',
		records INTEGER NOT NULL,
		scans INTEGER NOT NULL,
		yes_scans INTEGER NOT NULL,
		no_scans INTEGER NOT NULL,
		missing_scans INTEGER NOT NULL,
		first_scan TEXT NOT NULL,
		last_scan TEXT NOT NULL,
		sum_loc INTEGER NOT NULL,
		max_concurrent INTEGER NOT NULL,
		max_optimal INTEGER NOT NULL
	)`)
	return err
}

// defaultDBPath puts the history database under the user's home directory,
// next to where other tool state lives.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".ehc", "history.db")
}

// NoopStore is the disabled history backend.
type NoopStore struct{}

// Record does nothing.
func (*NoopStore) Record(*schema.RunSummary) error { return nil }

// List returns no runs.
func (*NoopStore) List() ([]schema.RunSummary, error) { return nil, nil }

// Clear does nothing.
func (*NoopStore) Clear() error { return nil }

// Close does nothing.
func (*NoopStore) Close() error { return nil }
