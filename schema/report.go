package schema

import (
	"fmt"
	"io"
	"sort"
)

// RunReport accumulates per-record outcomes for one pipeline run.
// Data-quality problems are collected here and reported in aggregate at
// the end of the run instead of aborting it; only structural errors stop
// a run early.
type RunReport struct {
	FilesRead   int
	Processed   int // records accepted into aggregation
	Skipped     int // malformed records dropped (or fatal in strict mode)
	Filtered    int // records for contests outside the filter
	SkipReasons map[string]int
	Warnings    []string
}

// NewRunReport returns an empty report.
func NewRunReport() *RunReport {
	return &RunReport{SkipReasons: make(map[string]int)}
}

// Skip records a dropped record with its reason.
func (r *RunReport) Skip(reason string) {
	r.Skipped++
	r.SkipReasons[reason]++
}

// Warn records a non-fatal data-quality warning.
func (r *RunReport) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Clean reports whether the run had no skips and no warnings.
func (r *RunReport) Clean() bool {
	return r.Skipped == 0 && len(r.Warnings) == 0
}

// Write prints the run summary in a fixed order.
func (r *RunReport) Write(w io.Writer) {
	fmt.Fprintf(w, "Run summary: %d files, %d records processed, %d filtered, %d skipped\n",
		r.FilesRead, r.Processed, r.Filtered, r.Skipped)

	if r.Skipped > 0 {
		reasons := make([]string, 0, len(r.SkipReasons))
		for reason := range r.SkipReasons {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			fmt.Fprintf(w, "  skipped %d: %s\n", r.SkipReasons[reason], reason)
		}
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
}
