package statement

import (
	"github.com/leapstack-labs/leaptable/pkg/core"
)

// InsertBuilder accumulates the values of one INSERT statement.
type InsertBuilder struct {
	schema       *core.Schema
	pairs        []ColumnValuePair
	returning    []core.Column
	returningAll bool
}

// NewInsert creates an insert builder for schema.
func NewInsert(schema *core.Schema) *InsertBuilder {
	return &InsertBuilder{schema: schema}
}

// Set adds a value for col.
func (b *InsertBuilder) Set(col core.Column, value any) *InsertBuilder {
	b.pairs = append(b.pairs, ColumnValuePair{Column: col, Value: value})
	return b
}

// Returning asks the database to return the given columns of the inserted row.
func (b *InsertBuilder) Returning(cols ...core.Column) *InsertBuilder {
	b.returning = append(b.returning, cols...)
	return b
}

// ReturningAll asks the database to return every column of the inserted row.
func (b *InsertBuilder) ReturningAll() *InsertBuilder {
	b.returningAll = true
	return b
}

// HasReturning reports whether a RETURNING clause will be rendered.
func (b *InsertBuilder) HasReturning() bool {
	return b.returningAll || len(b.returning) > 0
}

// Clone returns an independent copy of the builder.
func (b *InsertBuilder) Clone() *InsertBuilder {
	return &InsertBuilder{
		schema:       b.schema,
		pairs:        append([]ColumnValuePair(nil), b.pairs...),
		returning:    append([]core.Column(nil), b.returning...),
		returningAll: b.returningAll,
	}
}

// Pairs returns the assignments added so far.
func (b *InsertBuilder) Pairs() []ColumnValuePair {
	out := make([]ColumnValuePair, len(b.pairs))
	copy(out, b.pairs)
	return out
}

// Schema returns the table the statement targets.
func (b *InsertBuilder) Schema() *core.Schema {
	return b.schema
}

// Build renders
//
//	INSERT INTO <ns>.<table> (<cols>) VALUES (<values>) [RETURNING <cols>|*]
func (b *InsertBuilder) Build() (string, error) {
	if len(b.pairs) == 0 {
		return "", ErrNoValues
	}

	sql := "INSERT INTO " + b.schema.QualifiedName() +
		" (" + pairColumns(b.pairs) + ") VALUES (" + pairValues(b.pairs) + ")"

	switch {
	case b.returningAll:
		sql += " RETURNING *"
	case len(b.returning) > 0:
		sql += " RETURNING " + columnNames(b.returning)
	}
	return sql, nil
}
