// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import "github.com/Tenjin25/MDRealignment/schema"

// RunStore defines the interface for tracking pipeline runs.
// This allows the persistence layer to be mocked for testing.
type RunStore interface {
	// RecordRun persists a completed (or failed) pipeline run.
	RecordRun(record schema.RunRecord) error

	// GetAllRuns returns every recorded run, oldest first.
	GetAllRuns() ([]schema.RunRecord, error)

	// GetStatus returns status information about the run store.
	GetStatus() (schema.RunStoreStatus, error)

	// Clear removes all recorded runs.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
