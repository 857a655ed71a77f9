package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sastops/ehc/schema"
)

// Default values for configuration.
const (
	DefaultSnapshotSeconds = 5
	ExcelSheetName         = "Data"
)

// DateFormat is the calendar-date representation used in reports.
const DateFormat = "2006-01-02"

// Config holds the runtime configuration for one analysis run.
// This struct remains the "final, validated" config.
type Config struct {
	InputFile       string
	Customer        string
	OutputDir       string
	CSV             bool
	FullData        bool
	FullFormat      schema.DumpFormat
	ExcelPath       string
	SnapshotSeconds int
	Progress        bool
	HistoryBackend  schema.HistoryBackend
	HistoryDBPath   string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputFileStr string

	Customer        string `mapstructure:"customer"`
	CSV             bool   `mapstructure:"csv"`
	FullData        bool   `mapstructure:"full-data"`
	FullFormat      string `mapstructure:"full-format"`
	Excel           string `mapstructure:"excel"`
	OutputDir       string `mapstructure:"output-dir"`
	SnapshotSeconds int    `mapstructure:"snapshot-seconds"`
	Progress        bool   `mapstructure:"progress"`
	HistoryBackend  string `mapstructure:"history-backend"`
	HistoryDBPath   string `mapstructure:"history-db"`
}

// ProcessConfig validates the raw input and produces the final Config.
func ProcessConfig(raw *ConfigRawInput, now time.Time) (*Config, error) {
	if raw.InputFileStr == "" {
		return nil, fmt.Errorf("an input file is required")
	}
	if _, err := os.Stat(raw.InputFileStr); err != nil {
		return nil, fmt.Errorf("cannot read input file %q: %w", raw.InputFileStr, err)
	}

	if raw.SnapshotSeconds <= 0 {
		return nil, fmt.Errorf("snapshot-seconds must be positive, got %d", raw.SnapshotSeconds)
	}

	format := schema.DumpFormat(raw.FullFormat)
	if _, ok := schema.ValidDumpFormats[format]; !ok {
		return nil, fmt.Errorf("invalid full-format %q (valid: csv, parquet)", raw.FullFormat)
	}

	backend := schema.HistoryBackend(raw.HistoryBackend)
	if _, ok := schema.ValidHistoryBackends[backend]; !ok {
		return nil, fmt.Errorf("invalid history-backend %q (valid: sqlite, none)", raw.HistoryBackend)
	}

	cfg := &Config{
		InputFile:       raw.InputFileStr,
		Customer:        raw.Customer,
		CSV:             raw.CSV,
		FullData:        raw.FullData,
		FullFormat:      format,
		ExcelPath:       raw.Excel,
		SnapshotSeconds: raw.SnapshotSeconds,
		Progress:        raw.Progress,
		HistoryBackend:  backend,
		HistoryDBPath:   raw.HistoryDBPath,
	}

	cfg.OutputDir = raw.OutputDir
	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir(raw.InputFileStr, raw.Customer, now)
	}

	return cfg, nil
}

// NeedsOutputDir reports whether the run writes any CSV files at all.
func (c *Config) NeedsOutputDir() bool {
	return c.CSV || c.FullData
}

// EnsureOutputDir creates the output directory when any CSV output is on.
func (c *Config) EnsureOutputDir() error {
	if !c.NeedsOutputDir() {
		return nil
	}
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory %q: %w", c.OutputDir, err)
	}
	return nil
}

// defaultOutputDir names the output directory after the customer, falling
// back to the input file's base name.
func defaultOutputDir(inputFile, customer string, now time.Time) string {
	name := customer
	if name == "" {
		base := filepath.Base(inputFile)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	name = strings.ReplaceAll(name, " ", "_")
	return fmt.Sprintf("ehc_output_%s_%s", name, now.Format("20060102-150405"))
}
