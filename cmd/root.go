package cmd

import (
	"fmt"
	"strings"

	"github.com/Tenjin25/MDRealignment/internal/contract"
	"github.com/Tenjin25/MDRealignment/internal/runstore"
	"github.com/Tenjin25/MDRealignment/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// runStore is the run-history store opened during setup.
var runStore contract.RunStore

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "mdrealign",
	Short:              "Build Maryland county-level election competitiveness data.",
	Long:               `MDRealignment turns raw Maryland election result files into the aggregated county-level dataset behind the realignment map.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".mdrealign") // Name of config file (without extension)
		viper.SetConfigType("yaml")       // We'll use YAML format
		viper.AddConfigPath(".")          // Look in the current directory
		viper.AddConfigPath("$HOME")      // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("MDREALIGN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("output", schema.JSONOut)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("artifact", contract.DefaultArtifactName)
	viper.SetDefault("convert-dir", contract.DefaultConvertDir)
	viper.SetDefault("map-config", contract.DefaultMapConfig)
	viper.SetDefault("csv-glob", contract.DefaultCSVGlob)
	viper.SetDefault("format", contract.DefaultSourceFormat)
	viper.SetDefault("runstore-backend", schema.SQLiteBackend)
	viper.SetDefault("runstore-db-connect", "")
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config, runs validation, and opens the run store.
func sharedSetup(_ *cobra.Command, args []string) error {
	if err := resolveConfig(args); err != nil {
		return err
	}

	// Open the run-history store with the validated config.
	store, err := runstore.NewRunStore(cfg.RunStoreBackend, cfg.RunStoreConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize run store: %w", err)
	}
	runStore = store
	return nil
}

// resultsSetup runs config validation without touching the run store.
// The results command only reads an existing artifact.
func resultsSetup(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{contract.DefaultArtifactName}
	}
	return resolveConfig(args)
}

// resolveConfig merges defaults, config file, env, and flags into cfg.
func resolveConfig(args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.InputPathStr = args[0]
	} else {
		input.InputPathStr = "."
	}

	// 4. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	return contract.ProcessAndValidate(cfg, input)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".mdrealign")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
