package cmd

import (
	"github.com/Tenjin25/MDRealignment/core"
	"github.com/Tenjin25/MDRealignment/internal/contract"
	"github.com/spf13/cobra"
)

// buildCmd runs the full pipeline from raw files to the JSON artifact.
var buildCmd = &cobra.Command{
	Use:   "build [raw-dir]",
	Short: "Run the full pipeline: raw files to aggregated JSON artifact.",
	Long: `Normalize, canonicalize, aggregate, and classify in one pass, without
writing intermediate CSV files to disk.

This composes the convert and aggregate stages in memory and produces the
same artifact byte for byte. It also writes the map config file the UI
fetches, carrying the map access token from --map-token or the
MDREALIGN_MAP_TOKEN environment variable.

Examples:
  # One-shot build from raw state board files
  mdrealign build raw/

  # Build with the map token for the published site
  mdrealign build raw/ --map-token "$TOKEN"

  # Build against a custom artifact location
  mdrealign build raw/ --artifact data/md_county_aggregated_results.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBuild(cfg, runStore); err != nil {
			contract.LogFatal("Cannot build dataset", err)
		}
	},
}
