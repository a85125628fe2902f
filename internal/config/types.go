// Package config provides configuration management for the lengthcalc CLI.
// It layers koanf providers (defaults, YAML file, environment, flags) into
// a single Config and converts the source section into the host.Config
// consumed by providers.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"
)

// SourceConfig holds host source configuration.
type SourceConfig struct {
	Type string `koanf:"type"` // sqlite, duckdb, postgres, modelfile, schedule

	// File-backed sources (sqlite, duckdb, modelfile, schedule)
	Path string `koanf:"path"`

	// Network databases
	DSN      string `koanf:"dsn"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`

	// Schedule exports
	Encoding   string `koanf:"encoding"`
	Delimiter  string `koanf:"delimiter"`
	NameColumn string `koanf:"name_column"`

	// Additional provider-specific options
	Options map[string]string `koanf:"options"`
}

// ToHostConfig converts the source section into the host.Config consumed
// by providers.
func (s *SourceConfig) ToHostConfig() host.Config {
	return host.Config{
		Type:       s.Type,
		Path:       s.Path,
		DSN:        s.DSN,
		Host:       s.Host,
		Port:       s.Port,
		Database:   s.Database,
		Username:   s.Username,
		Password:   s.Password,
		Encoding:   s.Encoding,
		Delimiter:  s.Delimiter,
		NameColumn: s.NameColumn,
		Options:    s.Options,
	}
}

// Validate checks if the source configuration is valid.
// It uses the host registry to determine which provider types are available.
func (s *SourceConfig) Validate() error {
	if s.Type == "" {
		return fmt.Errorf("source type is required")
	}

	// Use host registry as single source of truth
	if !host.IsRegistered(strings.ToLower(s.Type)) {
		return &host.UnknownProviderError{
			Type:      s.Type,
			Available: host.ListProviders(),
		}
	}

	return nil
}

// HistoryConfig holds run history settings.
type HistoryConfig struct {
	// Enabled turns run recording on or off
	Enabled bool `koanf:"enabled"`
}

// ProfileConfig holds profile-specific configuration overrides.
// A profile names a model and its preferred display unit, so one
// config file can describe several sites or disciplines.
type ProfileConfig struct {
	Unit   string        `koanf:"unit"`
	Source *SourceConfig `koanf:"source"`
}

// Config holds all CLI configuration options.
type Config struct {
	Source       *SourceConfig            `koanf:"source"`
	Unit         string                   `koanf:"unit"`
	OutputFormat string                   `koanf:"output"`
	StatePath    string                   `koanf:"state_path"`
	History      *HistoryConfig           `koanf:"history"`
	Verbose      bool                     `koanf:"verbose"`
	Profile      string                   `koanf:"profile"`
	Profiles     map[string]ProfileConfig `koanf:"profiles"`
}

// HistoryEnabled reports whether run recording is on. Recording defaults
// to on when the config carries no history section.
func (c *Config) HistoryEnabled() bool {
	if c.History == nil {
		return true
	}
	return c.History.Enabled
}

// sourceTypesByExt maps file extensions to host provider types.
var sourceTypesByExt = map[string]string{
	".db":      "sqlite",
	".sqlite":  "sqlite",
	".sqlite3": "sqlite",
	".duckdb":  "duckdb",
	".ddb":     "duckdb",
	".json":    "modelfile",
	".yaml":    "modelfile",
	".yml":     "modelfile",
	".csv":     "schedule",
	".tsv":     "schedule",
	".txt":     "schedule",
}

// InferSourceType guesses the host provider type from a source argument.
// Postgres DSNs are recognized by scheme, files by extension.
// Returns "" when nothing matches.
func InferSourceType(arg string) string {
	if strings.HasPrefix(arg, "postgres://") || strings.HasPrefix(arg, "postgresql://") {
		return "postgres"
	}
	return sourceTypesByExt[strings.ToLower(filepath.Ext(arg))]
}
