// Package config loads the optional errgo CLI configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up in the working directory
// when no explicit path is given.
const DefaultFile = ".errgo.yml"

// Config controls the errgo CLI. Every field is optional; the zero value
// means built-in defaults.
type Config struct {
	// MarkerImport overrides the import path marker invocations are
	// recognized under.
	MarkerImport string `yaml:"marker_import"`

	// Attributes are opaque type-level attribute lines applied to every
	// expansion, before any per-function //errgo:attr lines.
	Attributes []string `yaml:"attributes"`

	// Include restricts processing to files whose path or base name
	// matches one of these globs. Empty means every file.
	Include []string `yaml:"include"`
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefault loads DefaultFile when it exists and an empty config
// otherwise.
func LoadDefault() (*Config, error) {
	cfg, err := Load(DefaultFile)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	return cfg, err
}

// Matches reports whether the file at path passes the include globs.
func (c *Config) Matches(path string) bool {
	if len(c.Include) == 0 {
		return true
	}
	base := filepath.Base(path)
	for _, glob := range c.Include {
		if ok, err := filepath.Match(glob, path); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(glob, base); err == nil && ok {
			return true
		}
	}
	return false
}
