// Package cmd defines the command-line interface for mdrealign.
package cmd

import (
	"github.com/Tenjin25/MDRealignment/internal/contract"
	"github.com/Tenjin25/MDRealignment/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.JSONOut), "Output format: json or csv or text or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write csv/text/parquet output to")
	rootCmd.PersistentFlags().String("artifact", contract.DefaultArtifactName, "Path of the aggregated JSON artifact")
	rootCmd.PersistentFlags().String("convert-dir", contract.DefaultConvertDir, "Directory for normalized per-year CSV files")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Bool("strict", false, "Abort on the first malformed record instead of skipping it")
	rootCmd.PersistentFlags().StringP("format", "f", contract.DefaultSourceFormat, "Column mapping for raw source files: mdsbe or openelections or a registered id")
	rootCmd.PersistentFlags().String("formats", "", "Optional YAML file with additional column mappings")
	rootCmd.PersistentFlags().String("csv-glob", contract.DefaultCSVGlob, "Glob for normalized CSV files within the input directory")
	rootCmd.PersistentFlags().String("map-token", "", "Map access token written to the map config file")
	rootCmd.PersistentFlags().String("map-config", contract.DefaultMapConfig, "Path of the map config file consumed by the UI")
	rootCmd.PersistentFlags().String("runstore-backend", string(schema.SQLiteBackend), "Run-history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("runstore-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of resultsCmd to Viper
	resultsCmd.Flags().String("year", "", "Only show results for this election year")
	resultsCmd.Flags().String("contest", "", "Only show results for this contest (e.g. Governor)")
	if err := viper.BindPFlags(resultsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding results flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
