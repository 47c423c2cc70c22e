// Package config loads xlsdump defaults from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds run defaults. Command-line flags override every field.
type Config struct {
	Input         string   `yaml:"input"`
	Output        string   `yaml:"output"`
	Format        string   `yaml:"format"`
	IncludeHidden *bool    `yaml:"include_hidden"`
	RowNumbers    bool     `yaml:"row_numbers"`
	Formulas      bool     `yaml:"formulas"`
	Prefix        string   `yaml:"prefix"`
	Extensions    []string `yaml:"extensions"`
}

// ShouldIncludeHidden returns whether hidden sheets are kept.
// Defaults to true when unset.
func (c Config) ShouldIncludeHidden() bool {
	if c.IncludeHidden != nil {
		return *c.IncludeHidden
	}
	return true
}

// Path returns the config file named by $XLSDUMP_CONFIG, if any.
func Path() string {
	return os.Getenv("XLSDUMP_CONFIG")
}

// Load reads the YAML file at path and applies environment overrides.
// An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("XLSDUMP_INPUT"); v != "" {
		c.Input = v
	}
	if v := os.Getenv("XLSDUMP_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("XLSDUMP_FORMAT"); v != "" {
		c.Format = v
	}
	if v := os.Getenv("XLSDUMP_INCLUDE_HIDDEN"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("XLSDUMP_INCLUDE_HIDDEN: %w", err)
		}
		c.IncludeHidden = &b
	}
	return nil
}
