// =============================================================================
// Sales Analytics - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. A single YAML file describes one pipeline run: where the
// input file lives, how its rows are shaped, which encodings to try, and how
// the enrichment API and report output behave.
//
// ARCHITECTURE:
//   The configuration is:
//   - Scoped: loaded once per run and passed down, never global mutable state
//   - Defaulted: every unset field receives a sensible default
//   - Validated: impossible combinations are rejected on load
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the full application configuration for one pipeline run.
type Config struct {
	// =========================================================================
	// FILE SETTINGS
	// =========================================================================

	// InputFile is the path to the raw sales data file.
	// Default: "./data/sales_data.txt"
	InputFile string `yaml:"input_file"`

	// OutputDir is the directory where enriched data and reports are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is the directory where processed input files are moved.
	// Files are only moved here after a fully successful run.
	// Default: "./archive"
	ArchiveDir string `yaml:"archive_dir"`

	// OutputNameFormat defines the output file name pattern.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {name}      - Base name of the input file without extension
	// Default: "enriched_{name}_{timestamp}.txt"
	OutputNameFormat string `yaml:"output_name_format"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// PIPELINE SETTINGS
	// =========================================================================

	// Pipeline contains settings for reading and parsing the input file.
	Pipeline PipelineSettings `yaml:"pipeline"`

	// =========================================================================
	// ENRICHMENT API SETTINGS
	// =========================================================================

	// API contains settings for the product metadata API.
	API APISettings `yaml:"api"`

	// =========================================================================
	// REPORT SETTINGS
	// =========================================================================

	// Report contains settings for report generation.
	Report ReportSettings `yaml:"report"`
}

// =============================================================================
// PIPELINE SETTINGS STRUCTURE
// =============================================================================

// PipelineSettings contains settings for reading and parsing the sales file.
type PipelineSettings struct {
	// Delimiter is the character separating fields in a row.
	// The feed uses "|" so that thousands separators inside numeric fields
	// do not split the row.
	// Default: "|"
	Delimiter string `yaml:"delimiter"`

	// Encodings is the ordered list of candidate encodings tried by the
	// reader. The first encoding that decodes the whole file wins.
	// Supported values: "UTF-8", "ISO-8859-1", "Windows-1252"
	// Default: ["UTF-8", "ISO-8859-1", "Windows-1252"]
	Encodings []string `yaml:"encodings"`

	// ThousandsSeparator is the grouping character stripped from numeric
	// fields before parsing.
	// Default: ","
	ThousandsSeparator string `yaml:"thousands_separator"`
}

// =============================================================================
// API SETTINGS STRUCTURE
// =============================================================================

// APISettings contains settings for the product metadata API client.
type APISettings struct {
	// BaseURL is the root URL of the product API.
	// Default: "https://dummyjson.com"
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds is the per-request timeout.
	// Default: 10
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// MaxRetries is the number of attempts for a failing request.
	// Default: 3
	MaxRetries int `yaml:"max_retries"`

	// PageLimit is the maximum number of products fetched per request.
	// Default: 100
	PageLimit int `yaml:"page_limit"`
}

// =============================================================================
// REPORT SETTINGS STRUCTURE
// =============================================================================

// ReportSettings contains settings for report generation.
type ReportSettings struct {
	// TopProducts is how many products the top-sellers section lists.
	// Default: 5
	TopProducts int `yaml:"top_products"`

	// LowSalesThreshold is the total-quantity cutoff below which a product
	// is flagged as low performing.
	// Default: 10
	LowSalesThreshold int `yaml:"low_sales_threshold"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads the configuration from a YAML file, applies defaults and
// validates the result.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns a configuration with every field set to its default value.
// Used when no config file is present.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.InputFile == "" {
		config.InputFile = "./data/sales_data.txt"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.ArchiveDir == "" {
		config.ArchiveDir = "./archive"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "enriched_{name}_{timestamp}.txt"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	// Pipeline defaults.
	if config.Pipeline.Delimiter == "" {
		config.Pipeline.Delimiter = "|"
	}
	if len(config.Pipeline.Encodings) == 0 {
		config.Pipeline.Encodings = []string{"UTF-8", "ISO-8859-1", "Windows-1252"}
	}
	if config.Pipeline.ThousandsSeparator == "" {
		config.Pipeline.ThousandsSeparator = ","
	}

	// API defaults.
	if config.API.BaseURL == "" {
		config.API.BaseURL = "https://dummyjson.com"
	}
	if config.API.TimeoutSeconds == 0 {
		config.API.TimeoutSeconds = 10
	}
	if config.API.MaxRetries == 0 {
		config.API.MaxRetries = 3
	}
	if config.API.PageLimit == 0 {
		config.API.PageLimit = 100
	}

	// Report defaults.
	if config.Report.TopProducts == 0 {
		config.Report.TopProducts = 5
	}
	if config.Report.LowSalesThreshold == 0 {
		config.Report.LowSalesThreshold = 10
	}
}

// validate rejects configurations the pipeline cannot run with.
func validate(config *Config) error {
	if len(config.Pipeline.Delimiter) != 1 {
		return fmt.Errorf("pipeline.delimiter must be a single character, got %q", config.Pipeline.Delimiter)
	}
	if config.Pipeline.Delimiter == config.Pipeline.ThousandsSeparator {
		return fmt.Errorf("pipeline.delimiter and pipeline.thousands_separator must differ, both are %q", config.Pipeline.Delimiter)
	}

	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", config.LogLevel)
	}

	for _, enc := range config.Pipeline.Encodings {
		if !isSupportedEncoding(enc) {
			return fmt.Errorf("unsupported encoding %q in pipeline.encodings", enc)
		}
	}

	return nil
}

// isSupportedEncoding reports whether the reader knows how to decode enc.
// The canonical list lives in the reader package; this check only guards
// configuration typos early.
func isSupportedEncoding(enc string) bool {
	switch enc {
	case "UTF-8", "ISO-8859-1", "Windows-1252":
		return true
	}
	return false
}
