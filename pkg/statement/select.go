package statement

import (
	"strconv"

	"github.com/leapstack-labs/leaptable/pkg/core"
)

// SelectBuilder accumulates one single-table SELECT statement.
type SelectBuilder struct {
	schema  *core.Schema
	columns []core.Column
	where   WhereChain
	orderBy []orderTerm
	limit   int
}

type orderTerm struct {
	column core.Column
	desc   bool
}

// NewSelect creates a select builder for schema.
func NewSelect(schema *core.Schema) *SelectBuilder {
	return &SelectBuilder{schema: schema}
}

// Columns narrows the projection. Without it every column is selected.
func (b *SelectBuilder) Columns(cols ...core.Column) *SelectBuilder {
	b.columns = append(b.columns, cols...)
	return b
}

// Where starts the predicate chain.
func (b *SelectBuilder) Where(col core.Column, op Operator, value any) *SelectBuilder {
	b.where.Where(NewWhereClause(col, op, value))
	return b
}

// And extends the predicate chain with AND.
func (b *SelectBuilder) And(col core.Column, op Operator, value any) *SelectBuilder {
	b.where.And(NewWhereClause(col, op, value))
	return b
}

// Or extends the predicate chain with OR.
func (b *SelectBuilder) Or(col core.Column, op Operator, value any) *SelectBuilder {
	b.where.Or(NewWhereClause(col, op, value))
	return b
}

// WhereClause starts the predicate chain with a prebuilt clause.
func (b *SelectBuilder) WhereClause(clause WhereClause) *SelectBuilder {
	b.where.Where(clause)
	return b
}

// AndClause extends the predicate chain with a prebuilt clause.
func (b *SelectBuilder) AndClause(clause WhereClause) *SelectBuilder {
	b.where.And(clause)
	return b
}

// OrClause extends the predicate chain with a prebuilt clause.
func (b *SelectBuilder) OrClause(clause WhereClause) *SelectBuilder {
	b.where.Or(clause)
	return b
}

// OrderBy appends a sort key.
func (b *SelectBuilder) OrderBy(col core.Column, desc bool) *SelectBuilder {
	b.orderBy = append(b.orderBy, orderTerm{column: col, desc: desc})
	return b
}

// Limit caps the number of returned rows. Zero or less means no limit.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

// Build renders
//
//	SELECT <cols>|* FROM <ns>.<table> [WHERE <chain>] [ORDER BY ...] [LIMIT n]
func (b *SelectBuilder) Build() (string, error) {
	if err := b.where.Err(); err != nil {
		return "", err
	}

	projection := "*"
	if len(b.columns) > 0 {
		projection = columnRefs(b.columns)
	}

	sql := "SELECT " + projection + " FROM " + b.schema.QualifiedName() + b.where.whereSuffix()

	for i, term := range b.orderBy {
		if i == 0 {
			sql += " ORDER BY "
		} else {
			sql += ", "
		}
		sql += term.column.Reference()
		if term.desc {
			sql += " DESC"
		}
	}

	if b.limit > 0 {
		sql += " LIMIT " + strconv.Itoa(b.limit)
	}
	return sql, nil
}
