package runstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tenjin25/MDRealignment/schema"
)

// runsDBFileName is the name of the default SQLite run-history file.
const runsDBFileName = ".mdrealign_runs.db"

// GetRunsDBFilePath returns the path to the SQLite DB file for run history.
func GetRunsDBFilePath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, runsDBFileName)
}

// ClearRuns clears the run history for the specified backend.
// For SQLite the database file is removed outright; for server backends
// the table is truncated through a normal connection.
func ClearRuns(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		path := dbFilePath
		if path == "" {
			path = GetRunsDBFilePath()
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove run history file %s: %w", path, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		store, err := NewRunStore(backend, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.Clear()

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported backend: %s", backend)
	}
}
