package core

import (
	"fmt"
	"strings"
)

// ColumnType is the declared SQL type of a column.
// Dialects translate it into engine-specific DDL.
type ColumnType int

// Column types.
const (
	TypeVarChar255 ColumnType = iota
	TypeText
	TypeInteger
	TypeBigInt
	TypeBoolean
	// TypeSerial is an auto-incrementing integer primary key.
	TypeSerial
	TypeTimestamp
)

var columnTypeNames = map[ColumnType]string{
	TypeVarChar255: "varchar_255",
	TypeText:       "text",
	TypeInteger:    "integer",
	TypeBigInt:     "bigint",
	TypeBoolean:    "boolean",
	TypeSerial:     "serial",
	TypeTimestamp:  "timestamp",
}

// String returns the config name of the type (e.g. "varchar_255").
func (t ColumnType) String() string {
	if name, ok := columnTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseColumnType parses a config name into a ColumnType. Matching is case-insensitive.
func ParseColumnType(s string) (ColumnType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, n := range columnTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown column type %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ColumnType) UnmarshalText(text []byte) error {
	parsed, err := ParseColumnType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t ColumnType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Column is an immutable description of a table column.
// Two columns are equal when their names match; type and table qualifier
// do not take part in identity.
type Column struct {
	name     string
	typ      ColumnType
	required bool
	table    string
}

// NewColumn creates a column.
func NewColumn(name string, typ ColumnType, required bool) Column {
	return Column{name: name, typ: typ, required: required}
}

// Name returns the bare column name.
func (c Column) Name() string { return c.name }

// Type returns the declared column type.
func (c Column) Type() ColumnType { return c.typ }

// Required reports whether inserts must supply a value for the column.
func (c Column) Required() bool { return c.required }

// Table returns the table qualifier, or "" for an unqualified column.
func (c Column) Table() string { return c.table }

// In returns a copy of the column qualified with table.
func (c Column) In(table string) Column {
	c.table = table
	return c
}

// Reference returns "table.column" for qualified columns and the bare name otherwise.
func (c Column) Reference() string {
	if c.table == "" {
		return c.name
	}
	return c.table + "." + c.name
}

// Equal reports whether both columns have the same name.
func (c Column) Equal(other Column) bool {
	return c.name == other.name
}

// String implements fmt.Stringer.
func (c Column) String() string {
	return c.Reference()
}
