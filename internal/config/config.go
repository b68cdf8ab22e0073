// Package config provides configuration management for salarydash.
package config

import (
	"fmt"
	"time"

	"github.com/paveg/salarydash/internal/errors"
	"github.com/paveg/salarydash/internal/validation"
	"gopkg.in/yaml.v3"
)

// DefaultDataSource is the published snapshot of the salary dataset.
const DefaultDataSource = "https://raw.githubusercontent.com/vqrca/dashboard_salarios_dados/refs/heads/main/dados-imersao-final.csv"

// Default configuration values
const (
	DefaultPort          = 8080
	DefaultTopN          = 10
	DefaultHistogramBins = 30
	DefaultFetchTimeout  = 30 * time.Second
	DefaultLogFormat     = LogFormatText
)

// Log formats accepted by log_format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

const maxPort = 65535

// RoleTarget names a role that gets its own per-country choropleth panel.
type RoleTarget struct {
	Role  string `json:"role"  koanf:"role"  yaml:"role"`
	Title string `json:"title" koanf:"title" yaml:"title"`
}

// Config holds all salarydash configuration options.
type Config struct {
	DataSource        string        `json:"data_source"        koanf:"data_source"        yaml:"data_source"`
	Port              int           `json:"port"               koanf:"port"               yaml:"port"`
	TopN              int           `json:"top_n"              koanf:"top_n"              yaml:"top_n"`
	HistogramBins     int           `json:"histogram_bins"     koanf:"histogram_bins"     yaml:"histogram_bins"`
	Roles             []RoleTarget  `json:"roles"              koanf:"roles"              yaml:"roles"`
	FetchTimeout      time.Duration `json:"fetch_timeout"      koanf:"fetch_timeout"      yaml:"fetch_timeout"`
	Workers           int           `json:"workers"            koanf:"workers"            yaml:"workers"`
	MetricsCollection bool          `json:"metrics_collection" koanf:"metrics_collection" yaml:"metrics_collection"`
	Verbose           bool          `json:"verbose"            koanf:"verbose"            yaml:"verbose"`
	LogFormat         string        `json:"log_format"         koanf:"log_format"         yaml:"log_format"`
}

// DefaultRoles returns the roles charted by default.
func DefaultRoles() []RoleTarget {
	return []RoleTarget{
		{Role: "Data Scientist", Title: "Mean Data Scientist salary by country"},
		{Role: "Data Engineer", Title: "Mean Data Engineer salary by country"},
		{Role: "Data Analyst", Title: "Mean Data Analyst salary by country"},
	}
}

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		DataSource:    DefaultDataSource,
		Port:          DefaultPort,
		TopN:          DefaultTopN,
		HistogramBins: DefaultHistogramBins,
		Roles:         DefaultRoles(),
		FetchTimeout:  DefaultFetchTimeout,
		LogFormat:     DefaultLogFormat,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	const op = "Config"

	if c.DataSource == "" {
		return errors.NewValidationError(op, "", "data_source must not be empty")
	}

	validators := []validation.Validator{
		validation.NewPositiveValidator(op, "port", c.Port),
		validation.NewPositiveValidator(op, "top_n", c.TopN),
		validation.NewPositiveValidator(op, "histogram_bins", c.HistogramBins),
	}
	if err := validation.NewCompoundValidator(validators...).Validate(); err != nil {
		return err
	}

	if c.Port > maxPort {
		return errors.NewValidationError(op, "", fmt.Sprintf("port must be at most %d, got %d", maxPort, c.Port))
	}
	if c.Workers < 0 {
		return errors.NewValidationError(op, "", fmt.Sprintf("workers must be non-negative, got %d", c.Workers))
	}
	if c.FetchTimeout < 0 {
		return errors.NewValidationError(op, "", fmt.Sprintf("fetch_timeout must be non-negative, got %s", c.FetchTimeout))
	}
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return errors.NewValidationError(op, "", fmt.Sprintf("log_format must be %q or %q, got %q", LogFormatText, LogFormatJSON, c.LogFormat))
	}
	for i, r := range c.Roles {
		if r.Role == "" {
			return errors.NewValidationError(op, "", fmt.Sprintf("roles[%d].role must not be empty", i))
		}
	}

	return nil
}

// WithDefaults returns a new configuration with default values filled in for zero values
func (c Config) WithDefaults() Config {
	defaults := NewConfig()

	if c.DataSource == "" {
		c.DataSource = defaults.DataSource
	}
	if c.Port == 0 {
		c.Port = defaults.Port
	}
	if c.TopN == 0 {
		c.TopN = defaults.TopN
	}
	if c.HistogramBins == 0 {
		c.HistogramBins = defaults.HistogramBins
	}
	if len(c.Roles) == 0 {
		c.Roles = defaults.Roles
	}
	if c.FetchTimeout == 0 {
		c.FetchTimeout = defaults.FetchTimeout
	}
	if c.LogFormat == "" {
		c.LogFormat = defaults.LogFormat
	}
	for i := range c.Roles {
		if c.Roles[i].Title == "" {
			c.Roles[i].Title = "Mean " + c.Roles[i].Role + " salary by country"
		}
	}

	// Booleans stay as given: false is indistinguishable from unset.
	return c
}

// Dump renders the effective configuration as YAML.
func (c Config) Dump() ([]byte, error) {
	out, err := yaml.Marshal(dumpView{
		DataSource:        c.DataSource,
		Port:              c.Port,
		TopN:              c.TopN,
		HistogramBins:     c.HistogramBins,
		Roles:             c.Roles,
		FetchTimeout:      c.FetchTimeout.String(),
		Workers:           c.Workers,
		MetricsCollection: c.MetricsCollection,
		Verbose:           c.Verbose,
		LogFormat:         c.LogFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding configuration: %w", err)
	}
	return out, nil
}

// dumpView mirrors Config with durations rendered as strings so the dump
// can be fed back as a config file.
type dumpView struct {
	DataSource        string       `yaml:"data_source"`
	Port              int          `yaml:"port"`
	TopN              int          `yaml:"top_n"`
	HistogramBins     int          `yaml:"histogram_bins"`
	Roles             []RoleTarget `yaml:"roles"`
	FetchTimeout      string       `yaml:"fetch_timeout"`
	Workers           int          `yaml:"workers"`
	MetricsCollection bool         `yaml:"metrics_collection"`
	Verbose           bool         `yaml:"verbose"`
	LogFormat         string       `yaml:"log_format"`
}
