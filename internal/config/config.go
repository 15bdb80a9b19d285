// internal/config/config.go

// Package config loads and validates the static harvester configuration.
// All tunables — sources, retry and delay parameters, price bounds, backup
// retention, export sinks — live here; nothing is a runtime flag or a
// package-level global. The loaded Config is handed to the orchestrator at
// construction.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hwcatalog/harvester/internal/hardware"
)

// Config is the root configuration for one harvester run.
type Config struct {
	// DataDir holds the live per-category dataset files (cpu_data.json, ...).
	DataDir string `yaml:"data_dir"`

	// BackupDir holds date-bucketed snapshots of the live files.
	BackupDir string `yaml:"backup_dir"`

	// RetentionDays bounds how long backup date buckets are kept.
	RetentionDays int `yaml:"retention_days"`

	// LogLevel is one of debug|info|warn|error.
	LogLevel string `yaml:"log_level"`

	// Parallel runs the category pipelines concurrently instead of in order.
	Parallel bool `yaml:"parallel"`

	Fetch      FetchConfig                          `yaml:"fetch"`
	Validation ValidationConfig                     `yaml:"validation"`
	Categories map[hardware.Category]CategoryConfig `yaml:"categories"`
	Exports    []ExportConfig                       `yaml:"exports"`
	Metrics    MetricsConfig                        `yaml:"metrics"`
}

// FetchConfig controls HTTP retrieval behavior.
type FetchConfig struct {
	// MaxRetries is the retry ceiling per URL after the first attempt.
	MaxRetries int `yaml:"max_retries"`

	// DelayMinSeconds and DelayMaxSeconds bound the jittered politeness delay
	// taken before every request. These delays are deliberate throttling.
	DelayMinSeconds float64 `yaml:"delay_min_seconds"`
	DelayMaxSeconds float64 `yaml:"delay_max_seconds"`

	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds float64 `yaml:"timeout_seconds"`

	// Headers are sent with every request in addition to the defaults.
	Headers map[string]string `yaml:"headers"`

	// UserAgents rotate across requests; defaults applied when empty.
	UserAgents []string `yaml:"user_agents"`
}

// ValidationConfig carries the record validation bounds.
type ValidationConfig struct {
	MinPrice float64 `yaml:"min_price"`
	MaxPrice float64 `yaml:"max_price"`
}

// CategoryConfig configures harvesting for a single hardware category.
type CategoryConfig struct {
	// Sources are tried in order; each contributes rows to the same batch.
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig describes one remote page to harvest.
type SourceConfig struct {
	// Name tags provenance on records extracted from this source.
	Name string `yaml:"name"`

	URL string `yaml:"url"`

	// Render fetches the page through headless Chrome for JS-built markup.
	Render bool `yaml:"render"`

	// Listing switches extraction from <table> scanning to CSS-selected
	// item cards (e-commerce result pages). Nil means table extraction.
	Listing *ListingSelectors `yaml:"listing"`

	// MinRows and MinCols reject tables too small to be hardware data.
	MinRows int `yaml:"min_rows"`
	MinCols int `yaml:"min_cols"`
}

// ListingSelectors locate fields inside a listing item.
type ListingSelectors struct {
	Item  string `yaml:"item"`
	Title string `yaml:"title"`
	Price string `yaml:"price"`
	Link  string `yaml:"link"`
}

// ExportConfig describes one optional post-persist export sink.
type ExportConfig struct {
	// Format is one of csv|excel|sqlite|mysql|postgres|mongodb.
	Format string `yaml:"format"`

	// Path is the output file for file-backed formats.
	Path string `yaml:"path"`

	// DSN is the connection string for database formats.
	DSN string `yaml:"dsn"`

	// Table (or collection) receiving records; defaults to "<category>_specs".
	Table string `yaml:"table"`

	// Database names the mongodb database.
	Database string `yaml:"database"`
}

// MetricsConfig controls the monitoring endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// LoadFromFile reads, expands and validates a YAML configuration file.
func LoadFromFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration filename cannot be empty")
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses configuration from YAML bytes. Environment variable
// references of the form ${VAR} are expanded before parsing so DSNs can stay
// out of the file.
func LoadFromBytes(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("configuration data cannot be empty")
	}

	expanded := os.Expand(string(data), os.Getenv)

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns a configuration usable without a file: mock-data-only runs
// against the local data directory.
func Default() *Config {
	cfg := &Config{
		Categories: map[hardware.Category]CategoryConfig{
			hardware.CategoryCPU:   {},
			hardware.CategoryGPU:   {},
			hardware.CategoryPhone: {},
		},
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.BackupDir == "" {
		cfg.BackupDir = "backups"
	}
	if cfg.RetentionDays == 0 {
		cfg.RetentionDays = 30
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Fetch.MaxRetries == 0 {
		cfg.Fetch.MaxRetries = 3
	}
	if cfg.Fetch.DelayMinSeconds == 0 {
		cfg.Fetch.DelayMinSeconds = 1
	}
	if cfg.Fetch.DelayMaxSeconds == 0 {
		cfg.Fetch.DelayMaxSeconds = 5
	}
	if cfg.Fetch.TimeoutSeconds == 0 {
		cfg.Fetch.TimeoutSeconds = 30
	}
	if cfg.Validation.MinPrice == 0 {
		cfg.Validation.MinPrice = 50
	}
	if cfg.Validation.MaxPrice == 0 {
		cfg.Validation.MaxPrice = 50000
	}
	if cfg.Metrics.Listen == "" {
		cfg.Metrics.Listen = ":9090"
	}

	for cat, cc := range cfg.Categories {
		for i := range cc.Sources {
			src := &cc.Sources[i]
			if src.MinRows == 0 {
				src.MinRows = 3
			}
			if src.MinCols == 0 {
				src.MinCols = 3
			}
			if src.Name == "" {
				src.Name = hostOf(src.URL)
			}
		}
		cfg.Categories[cat] = cc
	}
}

// Validate checks the configuration for internal consistency and reports
// every problem found, not just the first.
func (c *Config) Validate() error {
	var errs []string

	if len(c.Categories) == 0 {
		errs = append(errs, "at least one category must be configured")
	}
	for cat, cc := range c.Categories {
		if !cat.Valid() {
			errs = append(errs, fmt.Sprintf("unknown category %q", cat))
		}
		for i, src := range cc.Sources {
			if src.URL == "" {
				errs = append(errs, fmt.Sprintf("%s source %d: url is required", cat, i))
			}
			if src.Listing != nil && src.Listing.Item == "" {
				errs = append(errs, fmt.Sprintf("%s source %d: listing.item selector is required", cat, i))
			}
		}
	}

	if c.Fetch.MaxRetries < 0 {
		errs = append(errs, "fetch.max_retries cannot be negative")
	}
	if c.Fetch.DelayMinSeconds < 0 || c.Fetch.DelayMaxSeconds < c.Fetch.DelayMinSeconds {
		errs = append(errs, "fetch delay range must satisfy 0 <= min <= max")
	}
	if c.Validation.MinPrice < 0 || c.Validation.MaxPrice <= c.Validation.MinPrice {
		errs = append(errs, "validation price bounds must satisfy 0 <= min < max")
	}
	if c.RetentionDays < 1 {
		errs = append(errs, "retention_days must be at least 1")
	}
	for i, exp := range c.Exports {
		switch exp.Format {
		case "csv", "excel", "sqlite":
			if exp.Path == "" {
				errs = append(errs, fmt.Sprintf("export %d (%s): path is required", i, exp.Format))
			}
		case "mysql", "postgres", "mongodb":
			if exp.DSN == "" {
				errs = append(errs, fmt.Sprintf("export %d (%s): dsn is required", i, exp.Format))
			}
		default:
			errs = append(errs, fmt.Sprintf("export %d: unsupported format %q", i, exp.Format))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// DataFile returns the live dataset path for a category.
func (c *Config) DataFile(cat hardware.Category) string {
	return fmt.Sprintf("%s/%s_data.json", strings.TrimRight(c.DataDir, "/"), cat)
}

func hostOf(rawURL string) string {
	s := rawURL
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimPrefix(s, "www.")
}
