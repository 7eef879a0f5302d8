// Package config loads ivr-audit configuration from .ivraudit/config.yml
// with environment variable overrides.
package config

import (
	"fmt"
	"runtime"
)

// Config is the complete ivr-audit configuration.
type Config struct {
	Audit  AuditConfig  `yaml:"audit" mapstructure:"audit"`
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Export ExportConfig `yaml:"export" mapstructure:"export"`
}

// AuditConfig tunes the extraction pipeline.
type AuditConfig struct {
	Workers    int    `yaml:"workers" mapstructure:"workers"`         // scripts processed concurrently
	HistoryDB  string `yaml:"history_db" mapstructure:"history_db"`   // path of the run history database
	CacheSize  int    `yaml:"cache_size" mapstructure:"cache_size"`   // watch-mode result cache capacity
	DebugTrace bool   `yaml:"debug_trace" mapstructure:"debug_trace"` // log per-field extraction skips
}

// PathsConfig defines which export files a directory audit picks up.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for export files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// ExportConfig defines where export commands write their files.
type ExportConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"` // output directory for CSV/JSON/DOT files
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Audit: AuditConfig{
			Workers:   runtime.NumCPU(),
			HistoryDB: ".ivraudit/history.db",
			CacheSize: 64,
		},
		Paths: PathsConfig{
			Include: []string{"*.xml", "**/*.xml"},
			Ignore:  []string{".ivraudit/**", ".git/**"},
		},
		Export: ExportConfig{
			Dir: "audit-export",
		},
	}
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if c.Audit.Workers < 1 {
		return fmt.Errorf("audit.workers must be at least 1, got %d", c.Audit.Workers)
	}
	if c.Audit.CacheSize < 1 {
		return fmt.Errorf("audit.cache_size must be at least 1, got %d", c.Audit.CacheSize)
	}
	if len(c.Paths.Include) == 0 {
		return fmt.Errorf("paths.include must list at least one pattern")
	}
	if c.Export.Dir == "" {
		return fmt.Errorf("export.dir must not be empty")
	}
	return nil
}
