package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Tenjin25/MDRealignment/internal/contract"
	"github.com/Tenjin25/MDRealignment/internal/parquet"
	"github.com/Tenjin25/MDRealignment/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeCountyJSONResults handles opening the file and calling the JSON writer.
func writeCountyJSONResults(results []*schema.CountyResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, results)
	}, "Wrote JSON")
}

// writeCountyCSVResults handles opening the file and calling the CSV writer.
func writeCountyCSVResults(results []*schema.CountyResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForCounties(csvWriter, results, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// writeCountyParquetResults exports county results to a parquet file.
// Parquet has no stdout rendition, so a destination path is required.
func writeCountyParquetResults(results []*schema.CountyResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	return parquet.WriteCountyRowsParquet(parquet.ConvertCountyResults(results), cfg.OutputFile)
}

// writeCountyTable generates and writes the human-readable table.
func writeCountyTable(results []*schema.CountyResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Year", "Contest", "County", "Dem", "Rep", "Total", "Margin %", "Rating"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	countyWidth := getMaxTableCountyWidth(cfg)
	var data [][]string
	for _, r := range results {
		label := contract.GetPlainLabel(r.Rating)
		if cfg.UseColors {
			label = contract.GetColorLabel(r.Rating)
		}
		row := []string{
			strconv.Itoa(r.Year),
			r.Contest,
			truncateLabel(r.County, countyWidth),
			fmt.Sprintf(intFmt, r.DemVotes),
			fmt.Sprintf(intFmt, r.RepVotes),
			fmt.Sprintf(intFmt, r.Turnout),
			formatMarginPct(r.MarginPct, fmtFloat),
			label,
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	totalVotes := 0
	for _, r := range results {
		totalVotes += r.Turnout
	}
	if _, err := fmt.Fprintf(writer, "Showing %d county results (total votes: %d)\n", len(results), totalVotes); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Rendered in %v\n", duration.Round(time.Millisecond)); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForCounties writes county results in CSV format.
func writeCSVResultsForCounties(w *csv.Writer, results []*schema.CountyResult, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"year",
		"contest",
		"contest_type",
		"county",
		"dem_candidate",
		"rep_candidate",
		"dem_votes",
		"rep_votes",
		"other_votes",
		"total_votes",
		"dem_pct",
		"rep_pct",
		"winner",
		"margin",
		"margin_pct",
		"category",
		"code",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		rec := []string{
			strconv.Itoa(r.Year),
			r.Contest,
			string(r.ContestType),
			r.County,
			r.DemCandidate,
			r.RepCandidate,
			fmt.Sprintf(intFmt, r.DemVotes),
			fmt.Sprintf(intFmt, r.RepVotes),
			fmt.Sprintf(intFmt, r.OtherVotes),
			fmt.Sprintf(intFmt, r.Turnout),
			fmtFloat(r.DemPct),
			fmtFloat(r.RepPct),
			r.Winner,
			fmt.Sprintf(intFmt, r.MarginVotes),
			formatMarginPct(r.MarginPct, fmtFloat),
			r.Rating.Category,
			r.Rating.Code,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// formatMarginPct renders a nullable margin; uncontested results show "-".
func formatMarginPct(marginPct *float64, fmtFloat func(float64) string) string {
	if marginPct == nil {
		return "-"
	}
	return fmtFloat(*marginPct)
}
