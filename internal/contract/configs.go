package contract

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Tenjin25/MDRealignment/schema"
	"github.com/go-playground/validator/v10"
)

// DateTimeFormat is the timestamp layout used in exports and run history.
var DateTimeFormat = time.RFC3339

// Default values for configuration.
const (
	DefaultPrecision    = 2
	MaxPrecision        = 4
	DefaultArtifactName = "md_county_aggregated_results.json"
	DefaultConvertDir   = "openelections"
	DefaultMapConfig    = "map_config.json"

	// DefaultCSVGlob matches the normalized per-year files produced by the
	// convert stage, e.g. 2020__md__general__county.csv.
	DefaultCSVGlob = "*__md__general__county.csv"

	// DefaultSourceFormat is the column mapping assumed for raw files when
	// no --format is given.
	DefaultSourceFormat = "mdsbe"
)

// validate checks struct tags on configuration values (band colors,
// required categories). Ordering rules are checked separately.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds the runtime configuration for a pipeline run.
// This struct remains the "final, validated" config; module-level mutable
// state is avoided so runs are reproducible and testable in isolation.
type Config struct {
	InputPath    string // Raw source dir (convert/build) or normalized CSV dir (aggregate)
	ArtifactPath string // Destination of the aggregated JSON artifact
	ConvertDir   string // Destination dir for normalized CSV files
	OutputFile   string // Optional path for csv/parquet/table exports
	Output       schema.OutputMode
	Precision    int
	Strict       bool // Abort on the first malformed record instead of skipping

	SourceFormat string // Column mapping id for raw source files
	FormatsPath  string // Optional YAML file extending the format registry
	CSVGlob      string // Glob for normalized CSV files within InputPath

	MapToken      string // Map access token forwarded to the map config file
	MapConfigPath string // Destination of the map config consumed by the UI

	Scale         schema.Scale
	ContestFilter map[string]schema.ContestMeta

	RunStoreBackend schema.DatabaseBackend
	RunStoreConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
	Width     int  // Terminal width override (0 = auto-detect)

	// Results command filters.
	Year    string
	Contest string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Artifact        string `mapstructure:"artifact"`
	ConvertDir      string `mapstructure:"convert-dir"`
	Precision       int    `mapstructure:"precision"`
	Strict          bool   `mapstructure:"strict"`
	Format          string `mapstructure:"format"`
	Formats         string `mapstructure:"formats"`
	CSVGlob         string `mapstructure:"csv-glob"`
	MapToken        string `mapstructure:"map-token"`
	MapConfig       string `mapstructure:"map-config"`
	RunStoreBackend string `mapstructure:"runstore-backend"`
	RunStoreConnect string `mapstructure:"runstore-db-connect"`
	Color           string `mapstructure:"color"`
	Width           int    `mapstructure:"width"`
	Year            string `mapstructure:"year"`
	Contest         string `mapstructure:"contest"`

	// --- Competitiveness scale from config file ---
	Scale ScaleRawInput `mapstructure:"scale"`
}

// ScaleRawInput holds a custom competitiveness scale from the config file.
// An empty Bands slice means the published default legend is used.
type ScaleRawInput struct {
	Bands          []BandRawInput `mapstructure:"bands"`
	TossupCategory *string        `mapstructure:"tossup_category"`
	TossupColor    *string        `mapstructure:"tossup_color"`
}

// BandRawInput is one unvalidated scale band from the config file.
type BandRawInput struct {
	Category string   `mapstructure:"category"`
	Min      *float64 `mapstructure:"min"`
	DemColor string   `mapstructure:"dem_color"`
	RepColor string   `mapstructure:"rep_color"`
}

// ProcessAndValidate converts raw input into the final validated Config.
// It populates cfg from input, applying defaults and rejecting invalid
// combinations before any file is touched.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := processPaths(cfg, input); err != nil {
		return err
	}
	if err := processOutput(cfg, input); err != nil {
		return err
	}
	if err := processScale(cfg, input); err != nil {
		return err
	}
	if err := processRunStore(cfg, input); err != nil {
		return err
	}

	cfg.Strict = input.Strict
	cfg.SourceFormat = strings.TrimSpace(input.Format)
	if cfg.SourceFormat == "" {
		cfg.SourceFormat = DefaultSourceFormat
	}
	cfg.FormatsPath = strings.TrimSpace(input.Formats)
	cfg.MapToken = strings.TrimSpace(input.MapToken)
	cfg.ContestFilter = schema.DefaultContestFilter()
	cfg.UseColors = parseBoolFlag(input.Color, true)
	cfg.Width = input.Width
	cfg.Year = strings.TrimSpace(input.Year)
	cfg.Contest = strings.TrimSpace(input.Contest)
	return nil
}

// processPaths resolves the positional input path and artifact destinations.
func processPaths(cfg *Config, input *ConfigRawInput) error {
	path := input.InputPathStr
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve input path %q: %w", path, err)
	}
	cfg.InputPath = filepath.Clean(abs)

	cfg.ArtifactPath = strings.TrimSpace(input.Artifact)
	if cfg.ArtifactPath == "" {
		cfg.ArtifactPath = DefaultArtifactName
	}
	cfg.ConvertDir = strings.TrimSpace(input.ConvertDir)
	if cfg.ConvertDir == "" {
		cfg.ConvertDir = DefaultConvertDir
	}
	cfg.MapConfigPath = strings.TrimSpace(input.MapConfig)
	if cfg.MapConfigPath == "" {
		cfg.MapConfigPath = DefaultMapConfig
	}
	cfg.CSVGlob = strings.TrimSpace(input.CSVGlob)
	if cfg.CSVGlob == "" {
		cfg.CSVGlob = DefaultCSVGlob
	}
	return nil
}

// processOutput validates the export format and precision.
func processOutput(cfg *Config, input *ConfigRawInput) error {
	mode := schema.OutputMode(strings.ToLower(strings.TrimSpace(input.Output)))
	if mode == "" {
		mode = schema.JSONOut
	}
	if _, ok := schema.ValidOutputModes[mode]; !ok {
		return fmt.Errorf("invalid output format %q. Must be json, csv, text, or parquet", input.Output)
	}
	cfg.Output = mode
	cfg.OutputFile = strings.TrimSpace(input.OutputFile)

	precision := input.Precision
	if precision < 1 {
		precision = DefaultPrecision
	}
	if precision > MaxPrecision {
		precision = MaxPrecision
	}
	cfg.Precision = precision
	return nil
}

// processScale converts the raw scale input into a validated schema.Scale.
func processScale(cfg *Config, input *ConfigRawInput) error {
	scale := schema.DefaultScale()

	if len(input.Scale.Bands) > 0 {
		bands := make([]schema.Band, 0, len(input.Scale.Bands))
		for _, raw := range input.Scale.Bands {
			if raw.Min == nil {
				return fmt.Errorf("scale band %q is missing a minimum margin", raw.Category)
			}
			bands = append(bands, schema.Band{
				Category: strings.TrimSpace(raw.Category),
				Min:      *raw.Min,
				DemColor: strings.TrimSpace(raw.DemColor),
				RepColor: strings.TrimSpace(raw.RepColor),
			})
		}
		scale.Bands = bands
	}
	if input.Scale.TossupCategory != nil {
		scale.TossupCategory = strings.TrimSpace(*input.Scale.TossupCategory)
	}
	if input.Scale.TossupColor != nil {
		scale.TossupColor = strings.TrimSpace(*input.Scale.TossupColor)
	}

	if err := validate.Struct(scale); err != nil {
		return fmt.Errorf("invalid competitiveness scale: %w", err)
	}
	if err := scale.CheckOrdering(); err != nil {
		return err
	}

	cfg.Scale = scale
	return nil
}

// processRunStore validates the run-history backend selection.
func processRunStore(cfg *Config, input *ConfigRawInput) error {
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(input.RunStoreBackend)))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidRunStoreBackends[backend]; !ok {
		return fmt.Errorf("invalid runstore backend %q. Must be sqlite, mysql, postgresql, or none", input.RunStoreBackend)
	}
	cfg.RunStoreBackend = backend
	cfg.RunStoreConnect = strings.TrimSpace(input.RunStoreConnect)
	return nil
}

// parseBoolFlag interprets yes/no style flag values with a fallback.
func parseBoolFlag(value string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}
