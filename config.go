// Configuration for the index tools: a small YAML file selects the analyzer
// pipeline, the default result count, and logging. Command-line flags always
// win over file values; the file exists so a corpus and its index can carry
// their build settings around together.
//
// Example:
//
//	analyzer:
//	  stemmer: native
//	search:
//	  top: 20
//	logging:
//	  level: info
//	  format: text
package ir

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level tool configuration.
type Config struct {
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Search   SearchConfig   `yaml:"search"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SearchConfig holds query-time defaults.
type SearchConfig struct {
	Top int `yaml:"top"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Analyzer: DefaultAnalyzerConfig(),
		Search:   SearchConfig{Top: DefaultTop},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads a YAML config file when path is non-empty, over defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Analyzer.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}
