package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Output   OutputConfig   `yaml:"output" envconfig:"OUTPUT"`
	Cleaning CleaningConfig `yaml:"cleaning" envconfig:"CLEANING"`
	Report   ReportConfig   `yaml:"report" envconfig:"REPORT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/opsreport.log"`
}

// OutputConfig controls where generated artifacts are written
type OutputConfig struct {
	Dir         string `yaml:"dir" envconfig:"DIR" default:"."`
	ExcelExport bool   `yaml:"excel_export" envconfig:"EXCEL_EXPORT" default:"true"`
}

// CleaningConfig contains the fixed fill rules applied during cleaning
type CleaningConfig struct {
	UnknownLabel       string `yaml:"unknown_label" envconfig:"UNKNOWN_LABEL" default:"Unknown" validate:"required"`
	DefaultPriority    string `yaml:"default_priority" envconfig:"DEFAULT_PRIORITY" default:"3 - Moderate" validate:"required"`
	UnassignedGroup    string `yaml:"unassigned_group" envconfig:"UNASSIGNED_GROUP" default:"Unassigned Group" validate:"required"`
	UnassignedAssignee string `yaml:"unassigned_assignee" envconfig:"UNASSIGNED_ASSIGNEE" default:"unassigned" validate:"required"`
}

// ReportConfig controls report rendering
type ReportConfig struct {
	TopN        int `yaml:"top_n" envconfig:"TOP_N" default:"10" validate:"gt=0"`
	ChartWidth  int `yaml:"chart_width" envconfig:"CHART_WIDTH" default:"1024" validate:"gt=0"`
	ChartHeight int `yaml:"chart_height" envconfig:"CHART_HEIGHT" default:"512" validate:"gt=0"`
}

// DefaultConfig returns the built-in defaults without consulting the
// environment or any config file.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/opsreport.log",
		},
		Output: OutputConfig{
			Dir:         ".",
			ExcelExport: true,
		},
		Cleaning: CleaningConfig{
			UnknownLabel:       "Unknown",
			DefaultPriority:    "3 - Moderate",
			UnassignedGroup:    "Unassigned Group",
			UnassignedAssignee: "unassigned",
		},
		Report: ReportConfig{
			TopN:        10,
			ChartWidth:  1024,
			ChartHeight: 512,
		},
	}
}

// Load loads configuration from environment variables and an optional config file.
// Built-in defaults apply first, then OPSREPORT_* environment variables, then
// values from the config file.
func Load() (*Config, error) {
	return LoadFromFile(configFilePath())
}

// LoadFromFile loads configuration using the given YAML file path.
// A missing file is not an error; defaults and environment apply.
func LoadFromFile(configFile string) (*Config, error) {
	var cfg Config

	// Load from environment variables first (applies defaults for unset vars)
	if err := envconfig.Process("OPSREPORT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if it exists
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			mergeConfigs(&cfg, fileCfg)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// configFilePath returns the config file location, overridable via env
func configFilePath() string {
	if path := os.Getenv("OPSREPORT_CONFIG"); path != "" {
		return path
	}
	return "opsreport.yml"
}

// loadFromFile reads configuration from a YAML file
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &cfg, nil
}

// mergeConfigs overlays non-zero values from src onto dst
func mergeConfigs(dst *Config, src *Config) {
	if src.Logging.Level != "" {
		dst.Logging.Level = src.Logging.Level
	}
	if src.Logging.Format != "" {
		dst.Logging.Format = src.Logging.Format
	}
	if src.Logging.Output != "" {
		dst.Logging.Output = src.Logging.Output
	}
	if src.Logging.FilePath != "" {
		dst.Logging.FilePath = src.Logging.FilePath
	}
	if src.Output.Dir != "" {
		dst.Output.Dir = src.Output.Dir
	}
	if src.Cleaning.UnknownLabel != "" {
		dst.Cleaning.UnknownLabel = src.Cleaning.UnknownLabel
	}
	if src.Cleaning.DefaultPriority != "" {
		dst.Cleaning.DefaultPriority = src.Cleaning.DefaultPriority
	}
	if src.Cleaning.UnassignedGroup != "" {
		dst.Cleaning.UnassignedGroup = src.Cleaning.UnassignedGroup
	}
	if src.Cleaning.UnassignedAssignee != "" {
		dst.Cleaning.UnassignedAssignee = src.Cleaning.UnassignedAssignee
	}
	if src.Report.TopN != 0 {
		dst.Report.TopN = src.Report.TopN
	}
	if src.Report.ChartWidth != 0 {
		dst.Report.ChartWidth = src.Report.ChartWidth
	}
	if src.Report.ChartHeight != 0 {
		dst.Report.ChartHeight = src.Report.ChartHeight
	}
}

// validate checks the configuration for invalid values
func (c *Config) validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}
