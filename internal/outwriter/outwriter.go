// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/Tenjin25/MDRealignment/internal/contract"
	"github.com/Tenjin25/MDRealignment/internal/parquet"
	"github.com/Tenjin25/MDRealignment/schema"
)

// WriteCountyResults renders county results using the configured output
// format. JSON, CSV, and parquet renditions are export formats; the
// default is a human-readable color table.
func WriteCountyResults(results []*schema.CountyResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeCountyJSONResults(results, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCountyCSVResults(results, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeCountyParquetResults(results, cfg); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCountyTable(results, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// WriteRunRecords renders run history using the configured output format.
func WriteRunRecords(records []schema.RunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeRunJSONRecords(records, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeRunCSVRecords(records, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WritePipelineRunsParquet(parquet.ConvertRunRecords(records), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunTable(records, w)
		}, "Wrote table")
	}
	return nil
}

// WriteRunStatus prints a short summary of the run-history store.
func WriteRunStatus(status schema.RunStoreStatus, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if _, err := fmt.Fprintf(w, "Backend:    %s\n", status.Backend); err != nil {
			return err
		}
		if status.Location != "" {
			if _, err := fmt.Fprintf(w, "Location:   %s\n", status.Location); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns); err != nil {
			return err
		}
		if status.LastRun != nil {
			if _, err := fmt.Fprintf(w, "Last run:   %s\n", status.LastRun.Format(contract.DateTimeFormat)); err != nil {
				return err
			}
		}
		return nil
	}, "Wrote status")
}
