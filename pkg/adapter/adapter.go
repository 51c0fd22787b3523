// Package adapter provides the database adapter contract used by the
// executor to reach a concrete engine.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories and
// register themselves from init().
package adapter

import (
	"context"
	"database/sql"

	"github.com/leapstack-labs/leaptable/pkg/core"
	"github.com/leapstack-labs/leaptable/pkg/dialect"
)

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg core.AdapterConfig) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL statement that doesn't return rows (INSERT without
	// RETURNING, UPDATE, DELETE, DDL).
	Exec(ctx context.Context, sql string) (sql.Result, error)

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*core.Rows, error)

	// GetTableMetadata retrieves live column metadata for a table,
	// optionally qualified as "schema.table".
	GetTableMetadata(ctx context.Context, table string) (*core.TableMetadata, error)

	// Dialect returns the DDL and catalog rules for this engine.
	Dialect() *dialect.Dialect
}
