package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "gradecli/internal/errors"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "GRADES"

// Malformed date policies.
const (
	MalformedDateSkip = "skip"
	MalformedDateFail = "fail"
)

// Config represents the complete application configuration
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Extraction ExtractionConfig `yaml:"extraction" envconfig:"EXTRACTION"`
	Metrics    MetricsConfig    `yaml:"metrics" envconfig:"METRICS"`
	Lookups    Lookups          `yaml:"lookups" ignored:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system locations for a run
type PathsConfig struct {
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	IDsFile   string `yaml:"ids_file" envconfig:"IDS_FILE"`
}

// ExtractionConfig controls row handling in the record extractor
type ExtractionConfig struct {
	MalformedDates string `yaml:"malformed_dates" envconfig:"MALFORMED_DATES" validate:"oneof=skip fail"`
	Workers        int    `yaml:"workers" envconfig:"WORKERS" validate:"min=1,max=64"`
}

// MetricsConfig controls the optional prometheus textfile export
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path" envconfig:"TEXTFILE_PATH"`
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. A .env file in the working
// directory is loaded into the environment first when present.
func Load(filePath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, apperrors.NewConfigError("failed to load .env", err)
	}

	cfg := Default()

	if filePath == "" {
		filePath = getConfigFilePath()
	}
	if filePath != "" {
		if err := loadFromFile(filePath, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", filePath)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg. Lists in the file replace the
// built-in lists; subject mappings are merged per qualification.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks struct constraints and that the lookup tables compile.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if _, err := c.Lookups.Compile(); err != nil {
		return err
	}
	return nil
}

// getConfigFilePath returns the first config file found in common locations
func getConfigFilePath() string {
	locations := []string{
		"gradecli.yaml",
		"configs/gradecli.yaml",
		"../configs/gradecli.yaml",
	}

	for _, location := range locations {
		if FileExists(location) {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "gradecli.log",
		},
		Extraction: ExtractionConfig{
			MalformedDates: MalformedDateSkip,
			Workers:        1,
		},
		Lookups: DefaultLookups(),
	}
}
