package cmd

import (
	"fmt"

	"github.com/Tenjin25/MDRealignment/internal/contract"
	"github.com/Tenjin25/MDRealignment/internal/outwriter"
	"github.com/Tenjin25/MDRealignment/internal/runstore"
	"github.com/Tenjin25/MDRealignment/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsSetup loads minimal configuration needed for run-history operations.
// This is used by commands that need store access without full shared setup.
func runsSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	if err := resolveRunStoreConfig(); err != nil {
		return err
	}

	store, err := runstore.NewRunStore(cfg.RunStoreBackend, cfg.RunStoreConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize run store: %w", err)
	}
	runStore = store
	return nil
}

// runsMigrateSetup loads minimal configuration for migrate operations.
// It deliberately does NOT open the store or create tables, so migrations
// can run against a fresh database.
func runsMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	return resolveRunStoreConfig()
}

// resolveRunStoreConfig reads the store backend, connection, and export
// settings directly from viper.
func resolveRunStoreConfig() error {
	backend := schema.DatabaseBackend(viper.GetString("runstore-backend"))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidRunStoreBackends[backend]; !ok {
		return fmt.Errorf("invalid runstore backend %q. Must be sqlite, mysql, postgresql, or none", backend)
	}

	cfg.RunStoreBackend = backend
	cfg.RunStoreConnect = viper.GetString("runstore-db-connect")
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Precision = contract.DefaultPrecision

	output := schema.OutputMode(viper.GetString("output"))
	if output == "" {
		output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output format %q. Must be json, csv, text, or parquet", output)
	}
	cfg.Output = output
	return nil
}

// runsCmd focused on run-history management.
//
// Note: Runs subcommands use minimal initialization (runsSetup) instead of
// the full sharedSetup used by pipeline commands. This avoids input path
// resolution and scale parsing for simple store operations.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage pipeline run history",
	Long: `Manage the recorded history of convert, aggregate, and build runs.

When enabled, every pipeline run stores:
- Run metadata (command, start and end timestamps)
- Record counts (processed, skipped, filtered)
- The number of county results and the artifact path produced

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show run-history statistics
  export  - Export run history for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  # Check run history
  mdrealign runs status

  # Export for analysis in pandas/DuckDB
  mdrealign runs export --output parquet --output-file runs.parquet`,
}

// runsStatusCmd shows run-history status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run-history statistics and connection details",
	Long: `Show information about the recorded pipeline run history.

Displays the backend type, storage location, total recorded runs, and the
timestamp of the most recent run.

Examples:
  # Check run-history status
  mdrealign runs status`,
	PreRunE: runsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := runStore.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run store status", err)
		}
		if err := outwriter.WriteRunStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to write run store status", err)
		}
	},
}

// runsClearCmd clears the run history.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded pipeline runs",
	Long: `Delete all stored run history.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  mdrealign runs export --output csv --output-file backup.csv
  mdrealign runs clear`,
	PreRunE: runsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runstore.ClearRuns(cfg.RunStoreBackend, cfg.RunStoreConnect, cfg.RunStoreConnect); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// runsExportCmd exports run history in the configured output format.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history for BI tools and analytics",
	Long: `Export all recorded pipeline runs in the configured output format.

Parquet output enables fast querying with DuckDB, Apache Spark, and pandas,
and requires --output-file. CSV and JSON renditions write to stdout unless
--output-file is given.

Examples:
  # Export all runs to parquet
  mdrealign runs export --output parquet --output-file runs.parquet

  # Quick look at recent runs
  mdrealign runs export --output text`,
	PreRunE: runsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		records, err := runStore.GetAllRuns()
		if err != nil {
			contract.LogFatal("Failed to read run history", err)
		}
		if err := outwriter.WriteRunRecords(records, cfg); err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run-history store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  mdrealign runs migrate

  # Rollback to initial state
  mdrealign runs migrate --target-version 0`,
	PreRunE: runsMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := runstore.MigrateRuns(cfg.RunStoreBackend, cfg.RunStoreConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
