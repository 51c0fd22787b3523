// Package config loads leaptable configuration: the database target and the
// table declarations the CLI operates on.
package config

import (
	"github.com/leapstack-labs/leaptable/pkg/core"
)

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // postgres, sqlite, duckdb

	// File-based databases (SQLite, DuckDB) use this as the path.
	Database string `koanf:"database"`

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	Schema string `koanf:"schema"`

	// Additional driver-specific options (sslmode, sqlite pragmas)
	Options map[string]string `koanf:"options"`

	// Params holds adapter-specific configuration (e.g. DuckDB extensions, settings)
	Params map[string]any `koanf:"params"`
}

// AdapterConfig converts the target into the config adapters connect with.
func (t *TargetConfig) AdapterConfig() core.AdapterConfig {
	return core.AdapterConfig{
		Type:     t.Type,
		Path:     t.Database,
		Database: t.Database,
		Host:     t.Host,
		Port:     t.Port,
		Username: t.User,
		Password: t.Password,
		Schema:   t.Schema,
		Options:  t.Options,
		Params:   t.Params,
	}
}

// ColumnConfig declares one column of a table.
type ColumnConfig struct {
	Name     string          `koanf:"name"`
	Type     core.ColumnType `koanf:"type"`
	Required bool            `koanf:"required"`
}

// TableConfig declares a table.
type TableConfig struct {
	Name string `koanf:"name"`

	// Namespace defaults to the target schema.
	Namespace string         `koanf:"namespace"`
	Columns   []ColumnConfig `koanf:"columns"`
}

// Config holds all configuration options.
type Config struct {
	Target       *TargetConfig `koanf:"target"`
	Tables       []TableConfig `koanf:"tables"`
	Verbose      bool          `koanf:"verbose"`
	OutputFormat string        `koanf:"output"`

	// Environment selects an entry of Environments whose target is merged
	// over Target.
	Environment  string               `koanf:"environment"`
	Environments map[string]EnvConfig `koanf:"environments"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// EnvConfig holds environment-specific overrides.
type EnvConfig struct {
	Target *TargetConfig `koanf:"target"`
}

// Default configuration values.
const (
	DefaultTargetType = "sqlite"
	DefaultOutput     = "auto" // Auto-detect: TTY=table, non-TTY=markdown
)

// OutputFormats lists the accepted values of the output setting.
var OutputFormats = []string{"auto", "table", "json", "yaml", "csv", "markdown"}
