package schema

import "time"

// RunRecord is one persisted pipeline run. Run identifiers are generated
// by the application (not the database) so the table schema stays
// portable across every supported backend.
type RunRecord struct {
	RunID            int64
	Command          string
	StartTime        time.Time
	EndTime          *time.Time
	RecordsProcessed int
	RecordsSkipped   int
	RecordsFiltered  int
	CountyResults    int
	ArtifactPath     *string
	Succeeded        bool
}

// RunStoreStatus summarizes the run-history store.
type RunStoreStatus struct {
	Backend   DatabaseBackend
	Location  string
	TotalRuns int
	LastRun   *time.Time
}
