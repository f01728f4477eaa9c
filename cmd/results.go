package cmd

import (
	"github.com/Tenjin25/MDRealignment/core"
	"github.com/Tenjin25/MDRealignment/internal/contract"
	"github.com/spf13/cobra"
)

// resultsCmd renders a slice of a previously built artifact.
var resultsCmd = &cobra.Command{
	Use:   "results [artifact]",
	Short: "Show county results from a built artifact.",
	Long: `Load an aggregated JSON artifact and render county results, optionally
filtered by year and contest.

The default text rendition is a table with competitiveness labels colored
by the leading party. CSV, JSON, and parquet renditions are available for
downstream tools.

Examples:
  # Show every Governor result from 2022
  mdrealign results --year 2022 --contest Governor --output text

  # Slice a custom artifact and export to CSV
  mdrealign results data/results.json --year 2020 --output csv --output-file 2020.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: resultsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteResults(cfg); err != nil {
			contract.LogFatal("Cannot show results", err)
		}
	},
}
