package cmd

import (
	"github.com/Tenjin25/MDRealignment/core"
	"github.com/Tenjin25/MDRealignment/internal/contract"
	"github.com/spf13/cobra"
)

// aggregateCmd aggregates normalized CSV into the county-level dataset.
var aggregateCmd = &cobra.Command{
	Use:   "aggregate [csv-dir]",
	Short: "Aggregate normalized CSV into county-level competitiveness data.",
	Long: `Group normalized CSV rows by year, contest, and county, then classify
each county result on the competitiveness scale.

Only statewide contests are kept (President, Governor, U.S. Senator,
Attorney General, Comptroller); rows for other offices are counted as
filtered, not treated as errors. Candidate name variants that canonicalize
to the same label are merged by summing their votes.

With the default JSON output the aggregated artifact is written atomically
to the --artifact path, ready for the map UI. CSV, text, and parquet
renditions flatten the dataset for inspection and analytics instead.

Examples:
  # Build the artifact from previously converted files
  mdrealign aggregate openelections/

  # Inspect the flattened results as a color table
  mdrealign aggregate openelections/ --output text

  # Export for DuckDB or pandas
  mdrealign aggregate openelections/ --output parquet --output-file results.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAggregate(cfg, runStore); err != nil {
			contract.LogFatal("Cannot aggregate results", err)
		}
	},
}
