// Package core has core logic for normalization, aggregation and
// competitiveness classification.
package core

import "fmt"

// MalformedRecordError marks a single unparseable source row. It is
// collected into the run report and skipped unless strict mode is on.
type MalformedRecordError struct {
	File   string
	Line   int
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at %s:%d: %s", e.File, e.Line, e.Reason)
}

// UnknownSourceFormatError is structural: no column mapping is registered
// for the requested format id, so the pipeline aborts without output.
type UnknownSourceFormatError struct {
	FormatID string
	Known    []string
}

func (e *UnknownSourceFormatError) Error() string {
	return fmt.Sprintf("unknown source format %q (registered: %v)", e.FormatID, e.Known)
}

// InsufficientDataError marks a county contest with zero turnout. The
// contest is omitted from the output with a logged warning; the run
// itself continues.
type InsufficientDataError struct {
	Year    int
	Contest string
	County  string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %d %s in %s: zero turnout", e.Year, e.Contest, e.County)
}
