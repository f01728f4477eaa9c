package cmd

import (
	"github.com/Tenjin25/MDRealignment/core"
	"github.com/Tenjin25/MDRealignment/internal/contract"
	"github.com/spf13/cobra"
)

// convertCmd converts raw election files into normalized CSV.
var convertCmd = &cobra.Command{
	Use:   "convert [raw-dir]",
	Short: "Convert raw election result files into normalized CSV.",
	Long: `Read raw election result files and write normalized per-year CSV files.

Each output row carries one candidate's vote total for one contest in one
county, under the fixed header: year, contest, county, candidate, party, votes.
Output files land in the convert directory, one per election year.

The column layout of the raw files is selected with --format. Additional
layouts can be registered through a YAML file passed with --formats.

Malformed rows are skipped and counted by default; pass --strict to abort
on the first bad row instead.

Examples:
  # Convert state board result files with the default layout
  mdrealign convert raw/

  # Convert files that already use OpenElections column names
  mdrealign convert raw/ --format openelections

  # Fail fast during data validation
  mdrealign convert raw/ --strict`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteConvert(cfg, runStore); err != nil {
			contract.LogFatal("Cannot convert raw files", err)
		}
	},
}
