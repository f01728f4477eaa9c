package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Tenjin25/MDRealignment/internal/contract"
	"github.com/Tenjin25/MDRealignment/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeRunJSONRecords handles opening the file and calling the JSON writer.
func writeRunJSONRecords(records []schema.RunRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, records)
	}, "Wrote JSON")
}

// writeRunCSVRecords handles opening the file and calling the CSV writer.
func writeRunCSVRecords(records []schema.RunRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"run_id",
			"command",
			"start_time",
			"end_time",
			"records_processed",
			"records_skipped",
			"records_filtered",
			"county_results",
			"artifact_path",
			"succeeded",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, r := range records {
				rec := []string{
					strconv.FormatInt(r.RunID, 10),
					r.Command,
					r.StartTime.Format(contract.DateTimeFormat),
					formatOptionalTime(r.EndTime),
					strconv.Itoa(r.RecordsProcessed),
					strconv.Itoa(r.RecordsSkipped),
					strconv.Itoa(r.RecordsFiltered),
					strconv.Itoa(r.CountyResults),
					formatOptionalString(r.ArtifactPath),
					strconv.FormatBool(r.Succeeded),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeRunTable generates and writes the human-readable run history table.
func writeRunTable(records []schema.RunRecord, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Run", "Command", "Start", "Processed", "Skipped", "Filtered", "Results", "OK"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.RunID, 10),
			r.Command,
			r.StartTime.Format(contract.DateTimeFormat),
			strconv.Itoa(r.RecordsProcessed),
			strconv.Itoa(r.RecordsSkipped),
			strconv.Itoa(r.RecordsFiltered),
			strconv.Itoa(r.CountyResults),
			strconv.FormatBool(r.Succeeded),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Showing %d recorded runs\n", len(records))
	return err
}

// formatOptionalTime renders a nullable timestamp for CSV export.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(contract.DateTimeFormat)
}

// formatOptionalString renders a nullable string for CSV export.
func formatOptionalString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
