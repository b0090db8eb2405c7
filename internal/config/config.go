// Package config loads spikekit configuration from YAML, merging file
// values over built-in defaults and CLI flags over both.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ScanConfig holds directory scanning defaults.
type ScanConfig struct {
	// Extensions restricts scanning to the given file extensions.
	Extensions []string `yaml:"extensions"`

	// Recursive descends into subdirectories.
	Recursive bool `yaml:"recursive"`

	// ExcludeDirs lists directory names skipped entirely.
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// MaxDepth limits recursion depth (0 = unlimited).
	MaxDepth int `yaml:"max_depth"`

	// FollowLinks descends into symlinked directories.
	FollowLinks bool `yaml:"follow_links"`
}

// ExportConfig holds container-store export defaults.
type ExportConfig struct {
	// StorePath is the container store file written by exports.
	StorePath string `yaml:"store_path"`

	// Flat stores every object under "/" instead of mirroring the
	// source directory layout.
	Flat bool `yaml:"flat"`

	// WithCurrent appends an object's previous store path to its key.
	WithCurrent bool `yaml:"with_current"`
}

// Config represents spikekit configuration options.
type Config struct {
	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Scan contains directory scanning defaults.
	Scan ScanConfig `yaml:"scan"`

	// Export contains container-store export defaults.
	Export ExportConfig `yaml:"export"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Scan: ScanConfig{
			Extensions:  []string{".yaml", ".yml"},
			Recursive:   false,
			ExcludeDirs: nil,
			MaxDepth:    0,
			FollowLinks: false,
		},
		Export: ExportConfig{
			StorePath:   ".spikekit/store.db",
			Flat:        false,
			WithCurrent: true,
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file returns the defaults without error; a malformed file
// is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}

	// Nested sections merge per key: only keys present in the file
	// override the defaults.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err == nil {
		if section, ok := raw["scan"].(map[string]any); ok {
			mergeScan(&cfg.Scan, fileCfg.Scan, section)
		}
		if section, ok := raw["export"].(map[string]any); ok {
			mergeExport(&cfg.Export, fileCfg.Export, section)
		}
	}

	return cfg, nil
}

func mergeScan(dst *ScanConfig, src ScanConfig, keys map[string]any) {
	if _, ok := keys["extensions"]; ok {
		dst.Extensions = src.Extensions
	}
	if _, ok := keys["recursive"]; ok {
		dst.Recursive = src.Recursive
	}
	if _, ok := keys["exclude_dirs"]; ok {
		dst.ExcludeDirs = src.ExcludeDirs
	}
	if _, ok := keys["max_depth"]; ok {
		dst.MaxDepth = src.MaxDepth
	}
	if _, ok := keys["follow_links"]; ok {
		dst.FollowLinks = src.FollowLinks
	}
}

func mergeExport(dst *ExportConfig, src ExportConfig, keys map[string]any) {
	if _, ok := keys["store_path"]; ok {
		dst.StorePath = src.StorePath
	}
	if _, ok := keys["flat"]; ok {
		dst.Flat = src.Flat
	}
	if _, ok := keys["with_current"]; ok {
		dst.WithCurrent = src.WithCurrent
	}
}

// LoadConfigFromDir loads configuration from .spikekit/config.yaml in
// the specified directory. Missing directory or file returns defaults.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".spikekit", "config.yaml"))
}

// MergeWithFlags merges CLI flags into the configuration. Non-nil flag
// values override both the file and the defaults.
func (c *Config) MergeWithFlags(logLevel *string, recursive *bool, extensions *[]string, storePath *string) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if recursive != nil {
		c.Scan.Recursive = *recursive
	}
	if extensions != nil {
		c.Scan.Extensions = *extensions
	}
	if storePath != nil {
		c.Export.StorePath = *storePath
	}
}
