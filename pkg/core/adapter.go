package core

import (
	"database/sql"
)

// AdapterConfig holds configuration for connecting to a database.
type AdapterConfig struct {
	Type     string
	Path     string
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Schema   string
	Options  map[string]string
	Params   map[string]any
}

// ColumnMetadata describes a column as reported by the live database catalog.
type ColumnMetadata struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Nullable bool   `json:"nullable" yaml:"nullable"`
	Position int    `json:"position" yaml:"position"`
}

// TableMetadata holds metadata about a database table.
type TableMetadata struct {
	Schema   string           `json:"schema" yaml:"schema"`
	Name     string           `json:"name" yaml:"name"`
	Columns  []ColumnMetadata `json:"columns" yaml:"columns"`
	RowCount int64            `json:"row_count" yaml:"row_count"`
}

// Rows wraps sql.Rows to provide a consistent interface.
type Rows struct {
	*sql.Rows
}
