package statement

import (
	"github.com/leapstack-labs/leaptable/pkg/core"
)

// UpdateBuilder accumulates one UPDATE statement.
//
// Updates without a WHERE clause are rejected unless AllowUnscoped is called.
type UpdateBuilder struct {
	schema   *core.Schema
	pairs    []ColumnValuePair
	where    WhereChain
	unscoped bool
}

// NewUpdate creates an update builder for schema.
func NewUpdate(schema *core.Schema) *UpdateBuilder {
	return &UpdateBuilder{schema: schema}
}

// Set assigns value to col.
func (b *UpdateBuilder) Set(col core.Column, value any) *UpdateBuilder {
	b.pairs = append(b.pairs, ColumnValuePair{Column: col, Value: value})
	return b
}

// Where starts the predicate chain.
func (b *UpdateBuilder) Where(col core.Column, op Operator, value any) *UpdateBuilder {
	b.where.Where(NewWhereClause(col, op, value))
	return b
}

// And extends the predicate chain with AND.
func (b *UpdateBuilder) And(col core.Column, op Operator, value any) *UpdateBuilder {
	b.where.And(NewWhereClause(col, op, value))
	return b
}

// Or extends the predicate chain with OR.
func (b *UpdateBuilder) Or(col core.Column, op Operator, value any) *UpdateBuilder {
	b.where.Or(NewWhereClause(col, op, value))
	return b
}

// WhereClause starts the predicate chain with a prebuilt clause.
func (b *UpdateBuilder) WhereClause(clause WhereClause) *UpdateBuilder {
	b.where.Where(clause)
	return b
}

// AndClause extends the predicate chain with a prebuilt clause.
func (b *UpdateBuilder) AndClause(clause WhereClause) *UpdateBuilder {
	b.where.And(clause)
	return b
}

// OrClause extends the predicate chain with a prebuilt clause.
func (b *UpdateBuilder) OrClause(clause WhereClause) *UpdateBuilder {
	b.where.Or(clause)
	return b
}

// AllowUnscoped permits rendering an UPDATE that touches every row.
func (b *UpdateBuilder) AllowUnscoped() *UpdateBuilder {
	b.unscoped = true
	return b
}

// Pairs returns the assignments added so far.
func (b *UpdateBuilder) Pairs() []ColumnValuePair {
	out := make([]ColumnValuePair, len(b.pairs))
	copy(out, b.pairs)
	return out
}

// Build renders
//
//	UPDATE <ns>.<table> SET <col> = <value>, ... [WHERE <chain>]
func (b *UpdateBuilder) Build() (string, error) {
	if len(b.pairs) == 0 {
		return "", ErrNoValues
	}
	if err := b.where.Err(); err != nil {
		return "", err
	}
	if b.where.Len() == 0 && !b.unscoped {
		return "", ErrUnscoped
	}

	return "UPDATE " + b.schema.QualifiedName() + " SET " + pairAssignments(b.pairs) + b.where.whereSuffix(), nil
}
