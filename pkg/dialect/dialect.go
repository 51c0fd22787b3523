// Package dialect provides the per-engine SQL rules used when rendering
// statements that depend on the database engine: column type DDL,
// auto-increment keys and catalog lookups.
//
// Concrete dialects are registered from pkg/adapters/*/dialect packages.
package dialect

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leaptable/pkg/core"
)

// Template placeholders understood by Serial, SerialPrelude and TableExists.
const (
	PlaceholderNamespace = "{namespace}"
	PlaceholderTable     = "{table}"
	PlaceholderColumn    = "{column}"
)

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name string

	// DefaultSchema is the namespace used when a table does not name one
	// ("public" for Postgres, "main" for DuckDB and SQLite).
	DefaultSchema string

	types         map[core.ColumnType]string
	serial        string
	serialPrelude string
	tableExists   string
}

// TypeName returns the DDL spelling of a column type.
func (d *Dialect) TypeName(t core.ColumnType) (string, bool) {
	name, ok := d.types[t]
	return name, ok
}

// ColumnDefinition renders one column of a CREATE TABLE statement.
// Serial columns expand to the dialect's auto-increment primary key form,
// other required columns get NOT NULL.
func (d *Dialect) ColumnDefinition(namespace, table string, col core.Column) (string, error) {
	if col.Type() == core.TypeSerial && d.serial != "" {
		return col.Name() + " " + expand(d.serial, namespace, table, col.Name()), nil
	}

	typeName, ok := d.TypeName(col.Type())
	if !ok {
		return "", fmt.Errorf("dialect %s does not support column type %s", d.Name, col.Type())
	}

	def := col.Name() + " " + typeName
	if col.Required() {
		def += " NOT NULL"
	}
	return def, nil
}

// SerialPrelude returns the statement that must run before a table with the
// given serial column is created, or "" when the dialect needs none.
func (d *Dialect) SerialPrelude(namespace, table string, col core.Column) string {
	if d.serialPrelude == "" || col.Type() != core.TypeSerial {
		return ""
	}
	return expand(d.serialPrelude, namespace, table, col.Name())
}

// TableExistsQuery returns a query yielding a single boolean-like cell that
// is true when namespace.table exists.
func (d *Dialect) TableExistsQuery(namespace, table string) string {
	return expand(d.tableExists, namespace, table, "")
}

// QuoteLiteral renders s as a single-quoted SQL string literal.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func expand(tmpl, namespace, table, column string) string {
	escape := func(s string) string { return strings.ReplaceAll(s, "'", "''") }
	return strings.NewReplacer(
		PlaceholderNamespace, escape(namespace),
		PlaceholderTable, escape(table),
		PlaceholderColumn, escape(column),
	).Replace(tmpl)
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	d *Dialect
}

// NewDialect starts building a dialect with the given name.
func NewDialect(name string) *Builder {
	return &Builder{d: &Dialect{
		Name:  name,
		types: make(map[core.ColumnType]string),
	}}
}

// DefaultSchema sets the namespace used when none is configured.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.d.DefaultSchema = schema
	return b
}

// Type maps a column type to its DDL spelling.
func (b *Builder) Type(t core.ColumnType, ddl string) *Builder {
	b.d.types[t] = ddl
	return b
}

// Serial sets the full type clause used for serial columns, e.g. "SERIAL PRIMARY KEY".
func (b *Builder) Serial(tmpl string) *Builder {
	b.d.serial = tmpl
	return b
}

// SerialPrelude sets a statement executed before CREATE TABLE for each serial column.
func (b *Builder) SerialPrelude(tmpl string) *Builder {
	b.d.serialPrelude = tmpl
	return b
}

// TableExists sets the catalog query template.
func (b *Builder) TableExists(tmpl string) *Builder {
	b.d.tableExists = tmpl
	return b
}

// Build returns the finished dialect.
func (b *Builder) Build() *Dialect {
	return b.d
}
