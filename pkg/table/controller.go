// Package table provides the typed CRUD entry point over one table.
//
// A Controller validates requests against the table's schema, renders them
// with the statement builders, runs them through an executor and decodes
// the rows into T. Every failure is returned as a *Error whose Kind tells
// "nothing matched" apart from "something went wrong"; reads that match
// nothing return an empty slice and a nil error.
package table

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/leaptable/pkg/core"
	"github.com/leapstack-labs/leaptable/pkg/dialect"
	"github.com/leapstack-labs/leaptable/pkg/executor"
	"github.com/leapstack-labs/leaptable/pkg/result"
	"github.com/leapstack-labs/leaptable/pkg/statement"
)

// Controller runs typed operations against the table described by a schema.
// It holds no per-call state and is safe for concurrent use when the
// executor is.
type Controller[T any] struct {
	exec    executor.Executor
	schema  *core.Schema
	decode  func(result.Row) (T, error)
	policy  result.Policy
	dialect *dialect.Dialect
	logger  *slog.Logger
}

// dialectProvider is implemented by executors that know their engine.
type dialectProvider interface {
	Dialect() *dialect.Dialect
}

// describer is implemented by executors that can read the live catalog.
type describer interface {
	Describe(ctx context.Context, table string) (*core.TableMetadata, error)
}

// New creates a controller for schema. A schema without a namespace is placed
// in the dialect's default schema, so DML and DDL name the same table.
func New[T any](exec executor.Executor, schema *core.Schema, opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		exec:   exec,
		schema: schema,
		decode: defaultDecoder[T](),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.dialect == nil {
		if dp, ok := exec.(dialectProvider); ok {
			c.dialect = dp.Dialect()
		}
	}
	if schema.NamespaceName() == "" && c.dialect != nil && c.dialect.DefaultSchema != "" {
		c.schema = schema.WithNamespace(c.dialect.DefaultSchema)
	}
	c.logger = c.logger.With(slog.String("table", c.schema.QualifiedName()))
	return c
}

func defaultDecoder[T any]() func(result.Row) (T, error) {
	var zero T
	switch any(zero).(type) {
	case result.Row:
		return func(r result.Row) (T, error) {
			return any(r).(T), nil
		}
	case map[string]any:
		return func(r result.Row) (T, error) {
			return any(r.Map()).(T), nil
		}
	}
	return result.StructDecoder[T]()
}

// Schema returns the table's schema.
func (c *Controller[T]) Schema() *core.Schema {
	return c.schema
}

// InsertBuilder starts an insert into this table.
func (c *Controller[T]) InsertBuilder() *statement.InsertBuilder {
	return statement.NewInsert(c.schema)
}

// SelectBuilder starts a select from this table.
func (c *Controller[T]) SelectBuilder() *statement.SelectBuilder {
	return statement.NewSelect(c.schema)
}

// UpdateBuilder starts an update of this table.
func (c *Controller[T]) UpdateBuilder() *statement.UpdateBuilder {
	return statement.NewUpdate(c.schema)
}

// DeleteBuilder starts a delete from this table.
func (c *Controller[T]) DeleteBuilder() *statement.DeleteBuilder {
	return statement.NewDelete(c.schema)
}

// JoinBuilder starts a join statement with this table in FROM.
func (c *Controller[T]) JoinBuilder() *statement.JoinStatementBuilder {
	return statement.NewJoinStatement(c.schema)
}

// Insert validates b against the schema, inserts the row and returns it as
// the database stored it. Without an explicit RETURNING every column is
// returned; b itself is left untouched. A request missing a required column
// never reaches the database.
func (c *Controller[T]) Insert(ctx context.Context, b *statement.InsertBuilder) (T, error) {
	const op = "insert"
	var zero T

	if err := c.validateInsert(b); err != nil {
		return zero, c.fail(op, KindValidation, err)
	}
	if !b.HasReturning() {
		b = b.Clone().ReturningAll()
	}

	stmt, err := b.Build()
	if err != nil {
		return zero, c.fail(op, KindBuild, err)
	}

	resp, err := c.exec.ExecuteQuery(ctx, stmt, c.rowsDeserializer())
	if err != nil {
		return zero, c.execFail(op, err)
	}

	rows, err := c.narrow(op, resp)
	if len(rows) == 0 {
		if err != nil {
			return zero, err
		}
		return zero, c.fail(op, KindNotFound, errors.New("insert returned no rows"))
	}
	return rows[0], err
}

// Read returns every row matched by b. No match is an empty slice, not an
// error. Under CollectFailures a KindDecode error may accompany the rows
// that did decode.
func (c *Controller[T]) Read(ctx context.Context, b *statement.SelectBuilder) ([]T, error) {
	const op = "read"
	if b == nil {
		return nil, c.fail(op, KindValidation, errors.New("nil select builder"))
	}
	stmt, err := b.Build()
	if err != nil {
		return nil, c.fail(op, KindBuild, err)
	}
	return c.query(ctx, op, stmt)
}

// Join runs a multi-table select and decodes each combined row into T.
func (c *Controller[T]) Join(ctx context.Context, b *statement.JoinStatementBuilder) ([]T, error) {
	const op = "join"
	if b == nil {
		return nil, c.fail(op, KindValidation, errors.New("nil join builder"))
	}
	stmt, err := b.Build()
	if err != nil {
		return nil, c.fail(op, KindBuild, err)
	}
	return c.query(ctx, op, stmt)
}

// Update applies b and returns the number of rows changed.
func (c *Controller[T]) Update(ctx context.Context, b *statement.UpdateBuilder) (int64, error) {
	const op = "update"
	if b == nil {
		return 0, c.fail(op, KindValidation, errors.New("nil update builder"))
	}
	for _, p := range b.Pairs() {
		if !c.schema.Has(p.Column) {
			return 0, c.fail(op, KindValidation, fmt.Errorf("unknown column %s", p.Column.Name()))
		}
	}
	stmt, err := b.Build()
	if err != nil {
		return 0, c.fail(op, KindBuild, err)
	}
	return c.mutate(ctx, op, stmt)
}

// Delete applies b and returns the number of rows removed.
func (c *Controller[T]) Delete(ctx context.Context, b *statement.DeleteBuilder) (int64, error) {
	const op = "delete"
	if b == nil {
		return 0, c.fail(op, KindValidation, errors.New("nil delete builder"))
	}
	stmt, err := b.Build()
	if err != nil {
		return 0, c.fail(op, KindBuild, err)
	}
	return c.mutate(ctx, op, stmt)
}

// CreateTable creates the table from the schema.
func (c *Controller[T]) CreateTable(ctx context.Context) error {
	const op = "create table"
	stmt, err := statement.CreateTable(c.schema, c.dialect)
	if err != nil {
		return c.fail(op, KindBuild, err)
	}
	if _, err := c.exec.ExecuteUpdate(ctx, stmt, nil); err != nil {
		return c.execFail(op, err)
	}
	c.logger.Info("table created")
	return nil
}

// DropTable drops the table.
func (c *Controller[T]) DropTable(ctx context.Context) error {
	const op = "drop table"
	stmt, err := statement.DropTable(c.schema, c.dialect)
	if err != nil {
		return c.fail(op, KindBuild, err)
	}
	if _, err := c.exec.ExecuteUpdate(ctx, stmt, nil); err != nil {
		return c.execFail(op, err)
	}
	c.logger.Info("table dropped")
	return nil
}

// TableExists asks the catalog whether the table exists. It reports false
// whenever the answer cannot be obtained, with the reason in err.
func (c *Controller[T]) TableExists(ctx context.Context) (bool, error) {
	const op = "table exists"
	stmt, err := statement.TableExists(c.schema, c.dialect)
	if err != nil {
		return false, c.fail(op, KindBuild, err)
	}

	resp, err := c.exec.ExecuteQuery(ctx, stmt, result.ExistsDeserializer{})
	if err != nil {
		return false, c.execFail(op, err)
	}

	exists, ok := result.Cast[bool](resp)
	if !ok {
		return false, c.fail(op, KindShape, fmt.Errorf("payload %T is not bool", resp.Payload))
	}
	return exists, nil
}

// Describe returns the live catalog view of the table.
func (c *Controller[T]) Describe(ctx context.Context) (*core.TableMetadata, error) {
	const op = "describe"
	d, ok := c.exec.(describer)
	if !ok {
		return nil, c.fail(op, KindExecution, fmt.Errorf("executor %T cannot describe tables: %w", c.exec, errors.ErrUnsupported))
	}

	name := c.schema.TableName()
	if ns := c.schema.NamespaceName(); ns != "" {
		name = ns + "." + name
	}
	meta, err := d.Describe(ctx, name)
	if err != nil {
		return nil, c.execFail(op, err)
	}
	return meta, nil
}

func (c *Controller[T]) validateInsert(b *statement.InsertBuilder) error {
	if b == nil {
		return errors.New("nil insert builder")
	}

	pairs := b.Pairs()
	supplied := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		if !c.schema.Has(p.Column) {
			return fmt.Errorf("unknown column %s", p.Column.Name())
		}
		supplied[p.Column.Name()] = true
	}

	var missing []string
	for _, col := range c.schema.RequiredColumns() {
		if !supplied[col.Name()] {
			missing = append(missing, col.Name())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *Controller[T]) rowsDeserializer() result.Deserializer {
	return result.RowsDeserializer[T]{Decode: c.decode, Policy: c.policy}
}

func (c *Controller[T]) query(ctx context.Context, op, stmt string) ([]T, error) {
	resp, err := c.exec.ExecuteQuery(ctx, stmt, c.rowsDeserializer())
	if err != nil {
		return nil, c.execFail(op, err)
	}
	return c.narrow(op, resp)
}

func (c *Controller[T]) mutate(ctx context.Context, op, stmt string) (int64, error) {
	resp, err := c.exec.ExecuteUpdate(ctx, stmt, result.UpdateDeserializer{})
	if err != nil {
		return 0, c.execFail(op, err)
	}
	n, ok := result.Cast[int64](resp)
	if !ok {
		return 0, c.fail(op, KindShape, fmt.Errorf("payload %T is not a row count", resp.Payload))
	}
	c.logger.Debug("rows affected", slog.String("op", op), slog.Int64("rows", n))
	return n, nil
}

// narrow turns a rows response into []T. The slice is non-nil whenever the
// payload was a list; collected decode failures come back as a KindDecode
// error next to the rows that did decode.
func (c *Controller[T]) narrow(op string, resp *result.Response) ([]T, error) {
	rows, ok := result.CastList[T](resp)
	if !ok {
		var payload any
		if resp != nil {
			payload = resp.Payload
		}
		return nil, c.fail(op, KindShape, fmt.Errorf("payload %T is not a list", payload))
	}

	if resp.Dropped > 0 {
		c.logger.Warn("dropped undecodable rows", slog.String("op", op), slog.Int("dropped", resp.Dropped))
	}
	if len(resp.Failures) > 0 {
		return rows, c.fail(op, KindDecode, errors.Join(resp.Failures...))
	}
	return rows, nil
}

func (c *Controller[T]) execFail(op string, err error) error {
	kind := KindExecution
	if errors.Is(err, executor.ErrDeserialize) {
		kind = KindDecode
	}
	e := &Error{Kind: kind, Op: op, Table: c.schema.QualifiedName(), Err: err}

	var qe *executor.QueryError
	if errors.As(err, &qe) {
		e.Constraint = qe.Constraint
	}
	c.logger.Warn("operation failed", slog.String("op", op), slog.String("kind", kind.String()), slog.String("error", err.Error()))
	return e
}

func (c *Controller[T]) fail(op string, kind Kind, err error) error {
	c.logger.Warn("operation failed", slog.String("op", op), slog.String("kind", kind.String()), slog.String("error", err.Error()))
	return &Error{Kind: kind, Op: op, Table: c.schema.QualifiedName(), Err: err}
}
