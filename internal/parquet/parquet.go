// Package parquet provides data structures and functions for exporting
// aggregated election data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/Tenjin25/MDRealignment/schema"
	"github.com/parquet-go/parquet-go"
)

// CountyRow is the flat, columnar form of one county result. One row per
// (year, contest, county), with the per-candidate maps collapsed to the
// two-party fields analytics queries actually use.
type CountyRow struct {
	Year        int32  `parquet:"year,snappy"`
	Contest     string `parquet:"contest,snappy"`
	ContestType string `parquet:"contest_type,snappy"`
	OfficeRank  int32  `parquet:"office_rank,snappy"`
	County      string `parquet:"county,snappy"`

	DemCandidate string  `parquet:"dem_candidate,snappy"`
	RepCandidate string  `parquet:"rep_candidate,snappy"`
	DemVotes     int32   `parquet:"dem_votes,snappy"`
	RepVotes     int32   `parquet:"rep_votes,snappy"`
	DemPct       float64 `parquet:"dem_pct,snappy"`
	RepPct       float64 `parquet:"rep_pct,snappy"`
	OtherVotes   int32   `parquet:"other_votes,snappy"`
	TotalVotes   int32   `parquet:"total_votes,snappy"`
	Winner       string  `parquet:"winner,snappy"`

	MarginVotes int32 `parquet:"margin,snappy"`

	// MarginPct is nullable: uncontested contests carry no margin.
	MarginPct *float64 `parquet:"margin_pct,optional,snappy"`

	Category string `parquet:"category,snappy"`
	Code     string `parquet:"code,snappy"`
	Color    string `parquet:"color,snappy"`
}

// PipelineRun is the columnar form of one recorded pipeline run. This
// struct mirrors the pipeline_runs run-store table.
type PipelineRun struct {
	RunID            int64      `parquet:"run_id,snappy"`
	Command          string     `parquet:"command,snappy"`
	StartTime        time.Time  `parquet:"start_time,snappy"`
	EndTime          *time.Time `parquet:"end_time,optional,snappy"`
	RecordsProcessed int32      `parquet:"records_processed,snappy"`
	RecordsSkipped   int32      `parquet:"records_skipped,snappy"`
	RecordsFiltered  int32      `parquet:"records_filtered,snappy"`
	CountyResults    int32      `parquet:"county_results,snappy"`
	ArtifactPath     *string    `parquet:"artifact_path,optional,snappy"`
	Succeeded        bool       `parquet:"succeeded,snappy"`
}

// WriteCountyRowsParquet writes a slice of CountyRow structs to a Parquet file.
func WriteCountyRowsParquet(data []CountyRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the CountyRow struct tags.
	writer := parquet.NewGenericWriter[CountyRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WritePipelineRunsParquet writes a slice of PipelineRun structs to a Parquet file.
func WritePipelineRunsParquet(data []PipelineRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Schema is inferred from the PipelineRun struct tags.
	writer := parquet.NewGenericWriter[PipelineRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertCountyResults converts schema.CountyResult to CountyRow for Parquet export.
func ConvertCountyResults(results []*schema.CountyResult) []CountyRow {
	rows := make([]CountyRow, len(results))
	for i, r := range results {
		rows[i] = CountyRow{
			Year:         int32(r.Year),
			Contest:      r.Contest,
			ContestType:  string(r.ContestType),
			OfficeRank:   int32(r.OfficeRank),
			County:       r.County,
			DemCandidate: r.DemCandidate,
			RepCandidate: r.RepCandidate,
			DemVotes:     int32(r.DemVotes),
			RepVotes:     int32(r.RepVotes),
			DemPct:       r.DemPct,
			RepPct:       r.RepPct,
			OtherVotes:   int32(r.OtherVotes),
			TotalVotes:   int32(r.Turnout),
			Winner:       r.Winner,
			MarginVotes:  int32(r.MarginVotes),
			MarginPct:    r.MarginPct,
			Category:     r.Rating.Category,
			Code:         r.Rating.Code,
			Color:        r.Rating.Color,
		}
	}
	return rows
}

// ConvertRunRecords converts schema.RunRecord to PipelineRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []PipelineRun {
	rows := make([]PipelineRun, len(records))
	for i, record := range records {
		rows[i] = PipelineRun{
			RunID:            record.RunID,
			Command:          record.Command,
			StartTime:        record.StartTime,
			EndTime:          record.EndTime,
			RecordsProcessed: int32(record.RecordsProcessed),
			RecordsSkipped:   int32(record.RecordsSkipped),
			RecordsFiltered:  int32(record.RecordsFiltered),
			CountyResults:    int32(record.CountyResults),
			ArtifactPath:     record.ArtifactPath,
			Succeeded:        record.Succeeded,
		}
	}
	return rows
}
