// Package executor runs rendered statements against a database and hands
// the raw results to a deserializer.
package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/leaptable/pkg/adapter"
	"github.com/leapstack-labs/leaptable/pkg/core"
	"github.com/leapstack-labs/leaptable/pkg/dialect"
	"github.com/leapstack-labs/leaptable/pkg/result"
)

// ErrDeserialize marks failures of the deserializer rather than the database.
var ErrDeserialize = errors.New("failed to deserialize result")

// Executor is the boundary between statement building and the database.
type Executor interface {
	// ExecuteQuery runs a row-returning statement.
	ExecuteQuery(ctx context.Context, stmt string, d result.Deserializer) (*result.Response, error)

	// ExecuteUpdate runs a statement for its side effect; the deserializer
	// sees only the affected row count.
	ExecuteUpdate(ctx context.Context, stmt string, d result.Deserializer) (*result.Response, error)
}

// SQLExecutor executes statements through an adapter.
type SQLExecutor struct {
	adapter adapter.Adapter
	logger  *slog.Logger
}

// New creates an executor over a connected adapter.
// If logger is nil, a discard logger is used.
func New(adp adapter.Adapter, logger *slog.Logger) *SQLExecutor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLExecutor{adapter: adp, logger: logger}
}

// Dialect returns the dialect of the underlying adapter.
func (e *SQLExecutor) Dialect() *dialect.Dialect {
	return e.adapter.Dialect()
}

// Describe returns live catalog metadata for table.
func (e *SQLExecutor) Describe(ctx context.Context, table string) (*core.TableMetadata, error) {
	return e.adapter.GetTableMetadata(ctx, table)
}

// ExecuteQuery implements Executor.
func (e *SQLExecutor) ExecuteQuery(ctx context.Context, stmt string, d result.Deserializer) (*result.Response, error) {
	id := uuid.NewString()
	log := e.logger.With(slog.String("statement_id", id))
	log.Debug("executing query", slog.String("sql", stmt))
	start := time.Now()

	rows, err := e.adapter.Query(ctx, stmt)
	if err != nil {
		return nil, newQueryError(id, stmt, err)
	}
	defer func() { _ = rows.Close() }()

	raw, err := scanRows(rows)
	if err != nil {
		return nil, newQueryError(id, stmt, err)
	}

	log.Debug("query completed",
		slog.Int("rows", len(raw.Rows)),
		slog.Duration("elapsed", time.Since(start)))

	return deserialize(d, raw)
}

// ExecuteUpdate implements Executor.
func (e *SQLExecutor) ExecuteUpdate(ctx context.Context, stmt string, d result.Deserializer) (*result.Response, error) {
	id := uuid.NewString()
	log := e.logger.With(slog.String("statement_id", id))
	log.Debug("executing update", slog.String("sql", stmt))
	start := time.Now()

	res, err := e.adapter.Exec(ctx, stmt)
	if err != nil {
		return nil, newQueryError(id, stmt, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		// DDL on some drivers has no row count.
		log.Debug("rows affected unavailable", slog.String("error", err.Error()))
		affected = 0
	}

	log.Debug("update completed",
		slog.Int64("rows_affected", affected),
		slog.Duration("elapsed", time.Since(start)))

	return deserialize(d, result.Raw{RowsAffected: affected})
}

func deserialize(d result.Deserializer, raw result.Raw) (*result.Response, error) {
	if d == nil {
		return &result.Response{}, nil
	}
	resp, err := d.Deserialize(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeserialize, err)
	}
	return resp, nil
}

// scanRows drains rows into result rows. Driver byte slices are copied
// into strings since the driver may reuse them.
func scanRows(rows *core.Rows) (result.Raw, error) {
	cols, err := rows.Columns()
	if err != nil {
		return result.Raw{}, fmt.Errorf("failed to read columns: %w", err)
	}

	var out []result.Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return result.Raw{}, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(result.Row, len(cols))
		for i, name := range cols {
			v := values[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[i] = result.Cell{Name: name, Value: v}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return result.Raw{}, fmt.Errorf("error iterating rows: %w", err)
	}

	return result.Raw{Rows: out, RowsAffected: int64(len(out))}, nil
}

var _ Executor = (*SQLExecutor)(nil)
