package core

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/Tenjin25/MDRealignment/internal/contract"
	"github.com/Tenjin25/MDRealignment/internal/outwriter"
	"github.com/Tenjin25/MDRealignment/internal/sourcefmt"
	"github.com/Tenjin25/MDRealignment/schema"
)

// normalizedFormat is the format id of the intermediate CSV contract.
const normalizedFormat = "openelections"

// resolveMapping builds the format registry (built-ins plus the optional
// YAML extension file) and resolves the requested format id.
func resolveMapping(cfg *contract.Config, formatID string) (sourcefmt.Mapping, error) {
	registry := sourcefmt.NewRegistry()
	if cfg.FormatsPath != "" {
		if err := registry.MergeFile(cfg.FormatsPath); err != nil {
			return sourcefmt.Mapping{}, err
		}
	}
	mapping, ok := registry.Lookup(formatID)
	if !ok {
		return sourcefmt.Mapping{}, &UnknownSourceFormatError{FormatID: formatID, Known: registry.IDs()}
	}
	return mapping, nil
}

// ExecuteConvert runs the conversion stage: raw source files in the
// input dir become per-year normalized CSV files in the convert dir.
// It serves as the main entry point for the 'convert' command.
func ExecuteConvert(cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()
	report := schema.NewRunReport()

	mapping, err := resolveMapping(cfg, cfg.SourceFormat)
	if err != nil {
		return err
	}

	records, err := NormalizeDir(cfg.InputPath, "*.csv", mapping, cfg.Strict, report)
	if err != nil {
		return err
	}
	records = CanonicalizeRecords(records)

	written, err := WriteNormalizedCSV(records, cfg.ConvertDir)
	if err != nil {
		return err
	}

	fmt.Printf("Converted %d records into %d normalized files in %s (%v)\n",
		len(records), len(written), cfg.ConvertDir, time.Since(start).Round(time.Millisecond))
	report.Write(os.Stdout)
	recordRun(store, "convert", start, report, 0, nil, true)
	return nil
}

// ExecuteAggregate runs the aggregation stage over already-normalized
// CSV files: group, classify, and emit the dataset. JSON output goes to
// the artifact path atomically; csv/text/parquet renditions go through
// the export writers. It serves as the main entry point for the
// 'aggregate' command.
func ExecuteAggregate(cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()
	report := schema.NewRunReport()

	mapping, err := resolveMapping(cfg, normalizedFormat)
	if err != nil {
		return err
	}

	records, err := NormalizeDir(cfg.InputPath, cfg.CSVGlob, mapping, cfg.Strict, report)
	if err != nil {
		recordRun(store, "aggregate", start, report, 0, nil, false)
		return err
	}

	dataset := runAggregation(records, cfg, report)
	if err := emitDataset(dataset, cfg, time.Since(start)); err != nil {
		recordRun(store, "aggregate", start, report, 0, nil, false)
		return err
	}

	report.Write(os.Stdout)
	recordRun(store, "aggregate", start, report, dataset.Summary.TotalCountyResults, artifactFor(cfg), true)
	return nil
}

// ExecuteBuild composes both stages in memory: raw files are normalized,
// canonicalized, aggregated, and classified without any intermediate CSV
// on disk. It also writes the map config document the UI fetches. It
// serves as the main entry point for the 'build' command.
func ExecuteBuild(cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()
	report := schema.NewRunReport()

	mapping, err := resolveMapping(cfg, cfg.SourceFormat)
	if err != nil {
		return err
	}

	records, err := NormalizeDir(cfg.InputPath, "*.csv", mapping, cfg.Strict, report)
	if err != nil {
		recordRun(store, "build", start, report, 0, nil, false)
		return err
	}

	dataset := runAggregation(records, cfg, report)
	if err := WriteArtifact(cfg.ArtifactPath, dataset); err != nil {
		recordRun(store, "build", start, report, 0, nil, false)
		return err
	}
	if err := WriteMapConfig(cfg.MapConfigPath, cfg.MapToken); err != nil {
		return err
	}

	fmt.Printf("Wrote %s: %d years, %d contests, %d county results (%v)\n",
		cfg.ArtifactPath, dataset.Summary.TotalYears, dataset.Summary.TotalContests,
		dataset.Summary.TotalCountyResults, time.Since(start).Round(time.Millisecond))
	report.Write(os.Stdout)
	recordRun(store, "build", start, report, dataset.Summary.TotalCountyResults, artifactFor(cfg), true)
	return nil
}

// ExecuteResults loads a previously built artifact and renders a slice
// of it, optionally filtered by year and contest. It serves as the main
// entry point for the 'results' command.
func ExecuteResults(cfg *contract.Config) error {
	start := time.Now()

	data, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("cannot read artifact %s: %w", cfg.InputPath, err)
	}
	var dataset schema.AggregatedDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return fmt.Errorf("cannot parse artifact %s: %w", cfg.InputPath, err)
	}

	flat := FlattenDataset(&dataset)
	filtered := make([]*schema.CountyResult, 0, len(flat))
	for _, result := range flat {
		if cfg.Year != "" && fmt.Sprint(result.Year) != cfg.Year {
			continue
		}
		if cfg.Contest != "" && result.Contest != cfg.Contest {
			continue
		}
		filtered = append(filtered, result)
	}
	if len(filtered) == 0 {
		return fmt.Errorf("no county results match year=%q contest=%q", cfg.Year, cfg.Contest)
	}

	return outwriter.WriteCountyResults(filtered, cfg, time.Since(start))
}

// runAggregation is the shared canonicalize-aggregate-classify core of
// the aggregate and build paths.
func runAggregation(records []schema.ElectionRecord, cfg *contract.Config, report *schema.RunReport) *schema.AggregatedDataset {
	records = CanonicalizeRecords(records)
	results := AggregateRecords(records, cfg.ContestFilter, report)
	return BuildDataset(results, cfg.Scale, report)
}

// emitDataset dispatches the aggregate output: the JSON artifact is the
// primary product, everything else is an export rendition.
func emitDataset(dataset *schema.AggregatedDataset, cfg *contract.Config, duration time.Duration) error {
	if cfg.Output == schema.JSONOut {
		if err := WriteArtifact(cfg.ArtifactPath, dataset); err != nil {
			return err
		}
		fmt.Printf("Wrote %s: %d years, %d contests, %d county results (%v)\n",
			cfg.ArtifactPath, dataset.Summary.TotalYears, dataset.Summary.TotalContests,
			dataset.Summary.TotalCountyResults, duration.Round(time.Millisecond))
		return nil
	}
	return outwriter.WriteCountyResults(FlattenDataset(dataset), cfg, duration)
}

// artifactFor returns the artifact path pointer recorded with a
// successful aggregate or build run.
func artifactFor(cfg *contract.Config) *string {
	if cfg.Output != schema.JSONOut {
		return nil
	}
	path := cfg.ArtifactPath
	return &path
}

// recordRun persists the run summary when a run store is configured.
// Persistence failures are warnings: run history must never fail a
// pipeline that already produced its output.
func recordRun(store contract.RunStore, command string, start time.Time, report *schema.RunReport, countyResults int, artifact *string, succeeded bool) {
	if store == nil {
		return
	}
	end := time.Now().UTC()
	record := schema.RunRecord{
		RunID:            start.UnixNano(),
		Command:          command,
		StartTime:        start.UTC(),
		EndTime:          &end,
		RecordsProcessed: report.Processed,
		RecordsSkipped:   report.Skipped,
		RecordsFiltered:  report.Filtered,
		CountyResults:    countyResults,
		ArtifactPath:     artifact,
		Succeeded:        succeeded,
	}
	if err := store.RecordRun(record); err != nil {
		contract.LogWarn("could not record run", err)
	}
}
