package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if len(cfg.Scan.Extensions) != 2 {
		t.Errorf("Extensions = %v, want [.yaml .yml]", cfg.Scan.Extensions)
	}
	if cfg.Scan.Recursive {
		t.Error("Recursive should default to false")
	}
	if cfg.Export.StorePath == "" {
		t.Error("StorePath should have a default")
	}
	if !cfg.Export.WithCurrent {
		t.Error("WithCurrent should default to true")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected defaults, got LogLevel=%q", cfg.LogLevel)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `log_level: debug
scan:
  recursive: true
  extensions: [".dat"]
export:
  store_path: /tmp/out.db
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if !cfg.Scan.Recursive {
		t.Error("Recursive should be overridden to true")
	}
	if len(cfg.Scan.Extensions) != 1 || cfg.Scan.Extensions[0] != ".dat" {
		t.Errorf("Extensions = %v, want [.dat]", cfg.Scan.Extensions)
	}
	if cfg.Export.StorePath != "/tmp/out.db" {
		t.Errorf("StorePath = %q", cfg.Export.StorePath)
	}
	// Untouched keys keep their defaults.
	if !cfg.Export.WithCurrent {
		t.Error("WithCurrent should keep its default")
	}
	if cfg.Scan.MaxDepth != 0 {
		t.Errorf("MaxDepth = %d, want 0", cfg.Scan.MaxDepth)
	}
}

func TestLoadConfigExplicitFalse(t *testing.T) {
	path := writeConfig(t, `export:
  with_current: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Export.WithCurrent {
		t.Error("explicit false in file should override the true default")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "scan: [not a map")
	if _, err := LoadConfig(path); err == nil {
		t.Error("malformed config should error")
	}
}

func TestLoadConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, ".spikekit")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("log_level: warn\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFromDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()

	level := "trace"
	recursive := true
	store := "custom.db"
	cfg.MergeWithFlags(&level, &recursive, nil, &store)

	if cfg.LogLevel != "trace" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if !cfg.Scan.Recursive {
		t.Error("Recursive flag not applied")
	}
	if cfg.Export.StorePath != "custom.db" {
		t.Errorf("StorePath = %q", cfg.Export.StorePath)
	}
	// Nil flags leave values alone.
	if len(cfg.Scan.Extensions) != 2 {
		t.Errorf("Extensions changed: %v", cfg.Scan.Extensions)
	}
}
