package statement

import (
	"github.com/leapstack-labs/leaptable/pkg/core"
)

// DeleteBuilder accumulates one DELETE statement.
//
// Deletes without a WHERE clause are rejected unless AllowUnscoped is called.
type DeleteBuilder struct {
	schema   *core.Schema
	where    WhereChain
	unscoped bool
}

// NewDelete creates a delete builder for schema.
func NewDelete(schema *core.Schema) *DeleteBuilder {
	return &DeleteBuilder{schema: schema}
}

// Where starts the predicate chain.
func (b *DeleteBuilder) Where(col core.Column, op Operator, value any) *DeleteBuilder {
	b.where.Where(NewWhereClause(col, op, value))
	return b
}

// And extends the predicate chain with AND.
func (b *DeleteBuilder) And(col core.Column, op Operator, value any) *DeleteBuilder {
	b.where.And(NewWhereClause(col, op, value))
	return b
}

// Or extends the predicate chain with OR.
func (b *DeleteBuilder) Or(col core.Column, op Operator, value any) *DeleteBuilder {
	b.where.Or(NewWhereClause(col, op, value))
	return b
}

// WhereClause starts the predicate chain with a prebuilt clause.
func (b *DeleteBuilder) WhereClause(clause WhereClause) *DeleteBuilder {
	b.where.Where(clause)
	return b
}

// AndClause extends the predicate chain with a prebuilt clause.
func (b *DeleteBuilder) AndClause(clause WhereClause) *DeleteBuilder {
	b.where.And(clause)
	return b
}

// OrClause extends the predicate chain with a prebuilt clause.
func (b *DeleteBuilder) OrClause(clause WhereClause) *DeleteBuilder {
	b.where.Or(clause)
	return b
}

// AllowUnscoped permits rendering a DELETE that removes every row.
func (b *DeleteBuilder) AllowUnscoped() *DeleteBuilder {
	b.unscoped = true
	return b
}

// Build renders
//
//	DELETE FROM <ns>.<table> [WHERE <chain>]
func (b *DeleteBuilder) Build() (string, error) {
	if err := b.where.Err(); err != nil {
		return "", err
	}
	if b.where.Len() == 0 && !b.unscoped {
		return "", ErrUnscoped
	}
	return "DELETE FROM " + b.schema.QualifiedName() + b.where.whereSuffix(), nil
}
