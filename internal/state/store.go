// Package state records calculation runs in a local SQLite database.
// The store is an append-only audit log written by the CLI after a
// successful calculation; it is never read back into a calculation.
package state

import "time"

// Run is one recorded calculation.
type Run struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	Source        string    `json:"source"`
	Unit          string    `json:"unit"`
	TotalElements int       `json:"total_elements"`
	WithLength    int       `json:"with_length"`
	TotalFeet     float64   `json:"total_feet"`
	TotalDisplay  float64   `json:"total_display"`
}

// Store records and lists calculation runs.
type Store interface {
	// Open opens the store at the given path. Use ":memory:" for an
	// in-memory database.
	Open(path string) error

	// Migrate brings the schema up to date.
	Migrate() error

	// RecordRun appends a run. A blank ID and zero StartedAt are
	// filled in by the store.
	RecordRun(run *Run) error

	// ListRuns returns the most recent runs up to the given limit,
	// newest first.
	ListRuns(limit int) ([]*Run, error)

	// LatestRun returns the most recent run, or nil when none exist.
	LatestRun() (*Run, error)

	// Close closes the store.
	Close() error
}
