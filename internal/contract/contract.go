// Package contract provides interfaces and shared utilities for the ehc
// CLI's internal architecture.
package contract

import "github.com/sastops/ehc/schema"

// HistoryStore defines the interface for the run-history backend.
// This allows the store to be disabled or mocked for testing.
type HistoryStore interface {
	Record(run *schema.RunSummary) error
	List() ([]schema.RunSummary, error)
	Clear() error
	Close() error
}

// SectionWriter persists one rendered report section. Writers must never
// mutate the section or the statistics it was built from.
type SectionWriter interface {
	WriteSection(sec *schema.Section) error
}
