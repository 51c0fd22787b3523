package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/leaptable/pkg/adapter"
	"github.com/leapstack-labs/leaptable/pkg/core"
	"github.com/leapstack-labs/leaptable/pkg/dialect"
)

// ErrUnknownTable is returned when a table is not declared in the config.
var ErrUnknownTable = errors.New("table not declared in config")

// Validate checks if the target configuration is valid.
// It uses the adapter registry to determine which adapter types are available.
func (t *TargetConfig) Validate() error {
	if t.Type == "" {
		return fmt.Errorf("target type is required")
	}

	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}

	// Table DDL and catalog queries need the engine's dialect as well.
	if _, err := dialect.Resolve(t.Type); err != nil {
		return fmt.Errorf("target type %s: %w", t.Type, err)
	}

	return nil
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if c.Target == nil {
		return fmt.Errorf("target is required")
	}
	if err := c.Target.Validate(); err != nil {
		return fmt.Errorf("invalid target configuration: %w", err)
	}

	if c.OutputFormat != "" && !slices.Contains(OutputFormats, c.OutputFormat) {
		return fmt.Errorf("unknown output format %q (want one of %s)", c.OutputFormat, strings.Join(OutputFormats, ", "))
	}

	seen := make(map[string]bool, len(c.Tables))
	for i, tbl := range c.Tables {
		if tbl.Name == "" {
			return fmt.Errorf("tables[%d]: name is required", i)
		}
		if seen[tbl.Name] {
			return fmt.Errorf("table %s declared twice", tbl.Name)
		}
		seen[tbl.Name] = true

		if len(tbl.Columns) == 0 {
			return fmt.Errorf("table %s: at least one column is required", tbl.Name)
		}
		cols := make(map[string]bool, len(tbl.Columns))
		for j, col := range tbl.Columns {
			if col.Name == "" {
				return fmt.Errorf("table %s: columns[%d]: name is required", tbl.Name, j)
			}
			if cols[col.Name] {
				return fmt.Errorf("table %s: column %s declared twice", tbl.Name, col.Name)
			}
			cols[col.Name] = true
		}
	}
	return nil
}

// Schemas builds a schema for every declared table, in declaration order.
func (c *Config) Schemas() []*core.Schema {
	out := make([]*core.Schema, 0, len(c.Tables))
	for _, tbl := range c.Tables {
		out = append(out, c.schemaFor(tbl))
	}
	return out
}

// Schema builds the schema of the table declared as name.
func (c *Config) Schema(name string) (*core.Schema, error) {
	for _, tbl := range c.Tables {
		if tbl.Name == name {
			return c.schemaFor(tbl), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
}

func (c *Config) schemaFor(tbl TableConfig) *core.Schema {
	namespace := tbl.Namespace
	if namespace == "" && c.Target != nil {
		namespace = c.Target.Schema
	}
	cols := make([]core.Column, len(tbl.Columns))
	for i, col := range tbl.Columns {
		cols[i] = core.NewColumn(col.Name, col.Type, col.Required)
	}
	return core.NewSchema(namespace, tbl.Name, cols...)
}
