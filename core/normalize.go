package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Tenjin25/MDRealignment/internal/sourcefmt"
	"github.com/Tenjin25/MDRealignment/schema"
)

// columnIndexes resolves a mapping against a header row. A required
// column missing from the header is a structural mismatch between file
// and format, not a data-quality problem.
type columnIndexes struct {
	year, office, county, candidate, party, votes int
}

// resolveColumns locates each mapped column in the header. Optional
// columns (year, party) resolve to -1 when unmapped.
func resolveColumns(header []string, mapping sourcefmt.Mapping) (columnIndexes, error) {
	idx := columnIndexes{year: -1, party: -1}

	lookup := make(map[string]int, len(header))
	for i, name := range header {
		lookup[strings.TrimSpace(name)] = i
	}

	find := func(column, field string, required bool) (int, error) {
		if column == "" {
			if required {
				return -1, fmt.Errorf("format does not map the %s column", field)
			}
			return -1, nil
		}
		i, ok := lookup[column]
		if !ok {
			if required {
				return -1, fmt.Errorf("header has no %q column for %s", column, field)
			}
			return -1, nil
		}
		return i, nil
	}

	var err error
	if idx.year, err = find(mapping.Year, "year", false); err != nil {
		return idx, err
	}
	if idx.office, err = find(mapping.Office, "office", true); err != nil {
		return idx, err
	}
	if idx.county, err = find(mapping.County, "county", true); err != nil {
		return idx, err
	}
	if idx.candidate, err = find(mapping.Candidate, "candidate", true); err != nil {
		return idx, err
	}
	if idx.party, err = find(mapping.Party, "party", false); err != nil {
		return idx, err
	}
	if idx.votes, err = find(mapping.Votes, "votes", true); err != nil {
		return idx, err
	}
	return idx, nil
}

// YearFromFileName derives the election year from a source file named
// with a leading four-digit year, e.g. 2020__md__general__county.csv.
func YearFromFileName(name string) (int, bool) {
	base := filepath.Base(name)
	if len(base) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(base[:4])
	if err != nil || year < 1776 || year > 9999 {
		return 0, false
	}
	return year, true
}

// NormalizeFile parses one raw source file into ElectionRecords using the
// given column mapping. Labels are trimmed but not canonicalized; that is
// the canonicalizer's job. Malformed rows are skipped and counted in the
// report, or abort the run in strict mode. Missing vote cells parse as 0;
// negative votes are malformed.
func NormalizeFile(path string, mapping sourcefmt.Mapping, yearHint int, strict bool, report *schema.RunReport) ([]schema.ElectionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open source file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header of %s: %w", path, err)
	}
	idx, err := resolveColumns(header, mapping)
	if err != nil {
		return nil, fmt.Errorf("source file %s does not match format: %w", path, err)
	}
	if idx.year < 0 && yearHint == 0 {
		return nil, fmt.Errorf("source file %s has no year column and no year in its name", path)
	}

	var records []schema.ElectionRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			if recErr := handleMalformed(&MalformedRecordError{File: path, Line: line, Reason: err.Error()}, strict, report); recErr != nil {
				return nil, recErr
			}
			continue
		}

		rec, err := normalizeRow(row, idx, yearHint, path, line)
		if err != nil {
			if recErr := handleMalformed(err, strict, report); recErr != nil {
				return nil, recErr
			}
			continue
		}
		records = append(records, rec)
		report.Processed++
	}

	report.FilesRead++
	return records, nil
}

// normalizeRow converts one CSV row into an ElectionRecord.
func normalizeRow(row []string, idx columnIndexes, yearHint int, file string, line int) (schema.ElectionRecord, error) {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	year := yearHint
	if idx.year >= 0 {
		if raw := field(idx.year); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return schema.ElectionRecord{}, &MalformedRecordError{File: file, Line: line, Reason: fmt.Sprintf("invalid year %q", raw)}
			}
			year = parsed
		}
	}
	if year == 0 {
		return schema.ElectionRecord{}, &MalformedRecordError{File: file, Line: line, Reason: "missing year"}
	}

	votes, err := parseVotes(field(idx.votes))
	if err != nil {
		return schema.ElectionRecord{}, &MalformedRecordError{File: file, Line: line, Reason: err.Error()}
	}

	return schema.ElectionRecord{
		Year:      year,
		Contest:   field(idx.office),
		County:    field(idx.county),
		Candidate: field(idx.candidate),
		Party:     field(idx.party),
		Votes:     votes,
	}, nil
}

// parseVotes parses a vote cell. Empty cells count as zero; thousands
// separators from spreadsheet exports are tolerated; negative counts are
// rejected.
func parseVotes(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	votes, err := strconv.Atoi(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return 0, fmt.Errorf("invalid vote count %q", raw)
	}
	if votes < 0 {
		return 0, fmt.Errorf("negative vote count %d", votes)
	}
	return votes, nil
}

// handleMalformed either records the skip or, in strict mode, promotes
// the record error to a run-ending failure.
func handleMalformed(err error, strict bool, report *schema.RunReport) error {
	if strict {
		return err
	}
	if recErr, ok := err.(*MalformedRecordError); ok {
		report.Skip(recErr.Reason)
	} else {
		report.Skip(err.Error())
	}
	return nil
}
