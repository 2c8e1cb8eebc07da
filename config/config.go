// Package config loads the optional sweep.yaml project configuration.
package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultFileName is looked up in the working directory when no config path is
// given.
const DefaultFileName = "sweep.yaml"

// Config holds project-level defaults; command-line flags override every
// field.
type Config struct {
	Entrypoints []string `koanf:"entrypoints"`
	Root        string   `koanf:"root"`
	Ignore      []string `koanf:"ignore"`
}

// Load reads a config file. A missing file is not an error and yields the
// zero config.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path == "" {
		path = DefaultFileName
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
