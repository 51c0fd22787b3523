package table

import (
	"log/slog"

	"github.com/leapstack-labs/leaptable/pkg/dialect"
	"github.com/leapstack-labs/leaptable/pkg/result"
)

// Option configures a Controller.
type Option[T any] func(*Controller[T])

// WithDecoder sets how a row becomes a T. The default decodes structs
// through `db` tags.
func WithDecoder[T any](decode func(result.Row) (T, error)) Option[T] {
	return func(c *Controller[T]) {
		if decode != nil {
			c.decode = decode
		}
	}
}

// WithLogger sets the logger.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(c *Controller[T]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDecodePolicy sets what happens to rows that fail to decode.
func WithDecodePolicy[T any](p result.Policy) Option[T] {
	return func(c *Controller[T]) {
		c.policy = p
	}
}

// WithDialect sets the dialect used for DDL and catalog queries. Without it
// the controller asks the executor.
func WithDialect[T any](d *dialect.Dialect) Option[T] {
	return func(c *Controller[T]) {
		c.dialect = d
	}
}
