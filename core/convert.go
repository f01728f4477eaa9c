package core

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/Tenjin25/MDRealignment/internal/contract"
	"github.com/Tenjin25/MDRealignment/internal/sourcefmt"
	"github.com/Tenjin25/MDRealignment/schema"
)

// NormalizeDir parses every CSV file in dir with the given column
// mapping and returns the combined record sequence. Files without a
// four-digit year prefix rely on the format's year column.
func NormalizeDir(dir string, glob string, mapping sourcefmt.Mapping, strict bool, report *schema.RunReport) ([]schema.ElectionRecord, error) {
	paths, err := filepath.Glob(filepath.Join(dir, glob))
	if err != nil {
		return nil, fmt.Errorf("bad file pattern %q: %w", glob, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files matching %q in %s", glob, dir)
	}
	sort.Strings(paths)

	var records []schema.ElectionRecord
	for _, path := range paths {
		yearHint, _ := YearFromFileName(path)
		fileRecords, err := NormalizeFile(path, mapping, yearHint, strict, report)
		if err != nil {
			return nil, err
		}
		records = append(records, fileRecords...)
	}
	return records, nil
}

// WriteNormalizedCSV writes records into per-year files in the fixed
// intermediate schema, e.g. 2020__md__general__county.csv. Rows are
// sorted so repeated conversions of unchanged sources produce no diff.
func WriteNormalizedCSV(records []schema.ElectionRecord, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create output dir %s: %w", outDir, err)
	}

	byYear := make(map[int][]schema.ElectionRecord)
	for _, rec := range records {
		byYear[rec.Year] = append(byYear[rec.Year], rec)
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	var written []string
	for _, year := range years {
		rows := byYear[year]
		sort.Slice(rows, func(i, j int) bool {
			a, b := rows[i], rows[j]
			if a.Contest != b.Contest {
				return a.Contest < b.Contest
			}
			if a.County != b.County {
				return a.County < b.County
			}
			if a.Candidate != b.Candidate {
				return a.Candidate < b.Candidate
			}
			return a.Party < b.Party
		})

		path := filepath.Join(outDir, fmt.Sprintf("%d__md__general__county.csv", year))
		if err := writeNormalizedFile(path, rows); err != nil {
			return nil, err
		}
		written = append(written, path)
	}
	return written, nil
}

// writeNormalizedFile writes one per-year normalized CSV file.
func writeNormalizedFile(path string, rows []schema.ElectionRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(schema.NormalizedHeader); err != nil {
		return fmt.Errorf("cannot write header of %s: %w", path, err)
	}
	for _, rec := range rows {
		row := []string{
			strconv.Itoa(rec.Year),
			rec.Contest,
			rec.County,
			rec.Candidate,
			rec.Party,
			strconv.Itoa(rec.Votes),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("cannot write row of %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("cannot flush %s: %w", path, err)
	}
	return nil
}

// WriteMapConfig writes the small configuration document the map UI
// fetches alongside the dataset. The token is the only secret-ish value
// in the pipeline and lives in config, never in code.
func WriteMapConfig(path, token string) error {
	if token == "" {
		contract.LogWarn("no map token configured; skipping "+path, nil)
		return nil
	}
	data := []byte(fmt.Sprintf("{\n  \"map_access_token\": %q\n}\n", token))
	return contract.WriteFileAtomic(path, data)
}
