package contract

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/climb-tre/claspar/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 4
	MaxPrecision     = 6
)

// DefaultWorkers is the default number of concurrent classifier pipelines.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a parse run.
// This struct remains the "final, validated" config.
type Config struct {
	SampleID       string
	InputFile      string
	OutputDir      string
	ThresholdsFile string
	Classifiers    []schema.Classifier
	Workers        int
	Precision      int
	Output         schema.OutputMode
	OutputFile     string
	Width          int // Terminal width override (0 = auto-detect)

	ArchiveBackend   schema.DatabaseBackend
	ArchiveDBConnect string // Please use env var as this is plaintext

	LogFile   string
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	SampleIDStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Input            string `mapstructure:"input"`
	OutputDir        string `mapstructure:"output-dir"`
	OutputFile       string `mapstructure:"output-file"`
	Thresholds       string `mapstructure:"thresholds"`
	Classifiers      string `mapstructure:"classifiers"`
	Workers          int    `mapstructure:"workers"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	Width            int    `mapstructure:"width"`
	ArchiveBackend   string `mapstructure:"archive-backend"`
	ArchiveDBConnect string `mapstructure:"archive-db-connect"`
	LogFile          string `mapstructure:"log-file"`
	Color            string `mapstructure:"color"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Classifiers != nil {
		clone.Classifiers = make([]schema.Classifier, len(c.Classifiers))
		copy(clone.Classifiers, c.Classifiers)
	}
	return &clone
}

// ConfigParams returns the settings that influence analysis results,
// suitable for archiving alongside a run.
func (c *Config) ConfigParams() map[string]any {
	names := make([]string, len(c.Classifiers))
	for i, cl := range c.Classifiers {
		names[i] = string(cl)
	}
	return map[string]any{
		"classifiers": strings.Join(names, ","),
		"thresholds":  c.ThresholdsFile,
		"precision":   c.Precision,
	}
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processClassifiers(cfg, input); err != nil {
		return err
	}
	if err := resolveInputAndOutputPaths(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("archive-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("archive-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the archive backend configuration.
// An unset backend means run archiving is disabled.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backendStr := strings.ToLower(strings.TrimSpace(input.ArchiveBackend))
	if backendStr == "" {
		backendStr = string(schema.NoneBackend)
	}
	cfg.ArchiveBackend = schema.DatabaseBackend(backendStr)
	if _, ok := schema.ValidArchiveBackends[cfg.ArchiveBackend]; !ok {
		return fmt.Errorf("invalid archive backend '%s'. must be sqlite, mysql, postgresql, none", input.ArchiveBackend)
	}
	cfg.ArchiveDBConnect = input.ArchiveDBConnect
	return ValidateDatabaseConnectionString(cfg.ArchiveBackend, cfg.ArchiveDBConnect)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.ThresholdsFile = input.Thresholds
	cfg.OutputFile = input.OutputFile
	cfg.LogFile = input.LogFile
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 2. Precision Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	// --- 3. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be csv, text, json, parquet", cfg.Output)
	}

	// --- 4. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processClassifiers parses the comma-separated classifier selection.
// An empty selection means all classifiers.
func processClassifiers(cfg *Config, input *ConfigRawInput) error {
	raw := strings.TrimSpace(input.Classifiers)
	if raw == "" || strings.EqualFold(raw, "all") {
		cfg.Classifiers = make([]schema.Classifier, len(schema.AllClassifiers))
		copy(cfg.Classifiers, schema.AllClassifiers)
		return nil
	}

	seen := make(map[schema.Classifier]bool)
	for part := range strings.SplitSeq(raw, ",") {
		name := schema.Classifier(strings.ToLower(strings.TrimSpace(part)))
		if name == "" {
			continue
		}
		if _, ok := schema.ValidClassifiers[name]; !ok {
			valid := strings.Join(validClassifierNames(), ", ")
			return fmt.Errorf("invalid classifier '%s'. must be one of %s", name, valid)
		}
		if !seen[name] {
			seen[name] = true
			cfg.Classifiers = append(cfg.Classifiers, name)
		}
	}
	if len(cfg.Classifiers) == 0 {
		return fmt.Errorf("no classifiers selected from '%s'", input.Classifiers)
	}
	return nil
}

func validClassifierNames() []string {
	names := make([]string, 0, len(schema.ValidClassifiers))
	for name := range maps.Keys(schema.ValidClassifiers) {
		names = append(names, string(name))
	}
	return names
}

// resolveInputAndOutputPaths validates the sample ID, input file and output directory.
func resolveInputAndOutputPaths(cfg *Config, input *ConfigRawInput) error {
	cfg.SampleID = strings.TrimSpace(input.SampleIDStr)
	if cfg.SampleID == "" {
		return fmt.Errorf("sample ID is required")
	}

	cfg.InputFile = strings.TrimSpace(input.Input)
	if cfg.InputFile == "" {
		return fmt.Errorf("--input is required: path to the sample record JSON file")
	}
	absInput, err := filepath.Abs(cfg.InputFile)
	if err != nil {
		return fmt.Errorf("cannot resolve input path '%s': %w", cfg.InputFile, err)
	}
	info, err := os.Stat(absInput)
	if err != nil {
		return fmt.Errorf("input file '%s' is not accessible: %w", cfg.InputFile, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input path '%s' is a directory, expected a JSON file", cfg.InputFile)
	}
	cfg.InputFile = absInput

	outDir := strings.TrimSpace(input.OutputDir)
	if outDir == "" {
		outDir = "."
	}
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("cannot resolve output directory '%s': %w", outDir, err)
	}
	if err := os.MkdirAll(absOut, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory '%s': %w", outDir, err)
	}
	cfg.OutputDir = absOut

	return nil
}
