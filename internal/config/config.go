package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// EnvDatabase names the environment variable holding the ledger path.
	EnvDatabase = "BOZO_DB"
	// EnvLogLevel names the environment variable holding the log level.
	EnvLogLevel = "BOZO_LOG_LEVEL"
	// DefaultLogLevel is used when nothing else sets a level.
	DefaultLogLevel = "warn"
	// Extension is appended to ledger names by init.
	Extension = ".bozo"
	// FileName is the config file picked up from the working directory
	// when --config is not given.
	FileName = "bozo.yaml"
)

// ErrNoDatabase is returned when no ledger path is configured anywhere.
var ErrNoDatabase = errors.New("no database specified: use -d or set " + EnvDatabase)

// Config represents the optional bozo.yaml configuration.
type Config struct {
	Database string    `yaml:"database,omitempty"`
	Log      LogConfig `yaml:"log"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a bozo.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with no database and the default log level.
func Default() *Config {
	return &Config{Log: LogConfig{Level: DefaultLogLevel}}
}

// Resolve builds the effective configuration. A non-empty path must name a
// readable YAML file; with an empty path, FileName in the working directory
// is used if it exists. A .env file in the working directory is loaded if present;
// variables already set in the environment win over it. Environment variables
// override values from the file.
func Resolve(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		if _, err := os.Stat(FileName); err == nil {
			path = FileName
		}
	}
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		if cfg.Log.Level == "" {
			cfg.Log.Level = DefaultLogLevel
		}
	}

	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	return cfg, nil
}

// DatabasePath returns flag when set, otherwise the configured database.
func (c *Config) DatabasePath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if c.Database != "" {
		return c.Database, nil
	}
	return "", ErrNoDatabase
}
