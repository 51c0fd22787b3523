package statement

import (
	"strings"

	"github.com/leapstack-labs/leaptable/pkg/core"
)

// JoinStatementBuilder accumulates a multi-table SELECT.
type JoinStatementBuilder struct {
	schema  *core.Schema
	columns []core.Column
	joins   []*JoinBuilder
	where   WhereChain
}

// NewJoinStatement creates a join statement whose FROM table is schema.
func NewJoinStatement(schema *core.Schema) *JoinStatementBuilder {
	return &JoinStatementBuilder{schema: schema}
}

// Select adds columns to the projection. Use table-qualified columns to
// avoid ambiguity between joined tables.
func (b *JoinStatementBuilder) Select(cols ...core.Column) *JoinStatementBuilder {
	b.columns = append(b.columns, cols...)
	return b
}

// Join appends a join.
func (b *JoinStatementBuilder) Join(j *JoinBuilder) *JoinStatementBuilder {
	b.joins = append(b.joins, j)
	return b
}

// Where starts the statement's predicate chain.
func (b *JoinStatementBuilder) Where(col core.Column, op Operator, value any) *JoinStatementBuilder {
	b.where.Where(NewWhereClause(col, op, value))
	return b
}

// And extends the statement's predicate chain with AND.
func (b *JoinStatementBuilder) And(col core.Column, op Operator, value any) *JoinStatementBuilder {
	b.where.And(NewWhereClause(col, op, value))
	return b
}

// Or extends the statement's predicate chain with OR.
func (b *JoinStatementBuilder) Or(col core.Column, op Operator, value any) *JoinStatementBuilder {
	b.where.Or(NewWhereClause(col, op, value))
	return b
}

// Build renders
//
//	SELECT <refs> FROM <ns>.<table> INNER JOIN ... [WHERE ...]
//
// Table-qualified columns are aliased to their reference ("users.id") so
// same-named columns from different tables stay distinguishable.
//
// The statement's chain and each join's chain are combined with AND. When
// more than one chain is present each is parenthesized so the flat order
// inside a chain is preserved.
func (b *JoinStatementBuilder) Build() (string, error) {
	if err := b.where.Err(); err != nil {
		return "", err
	}
	if len(b.joins) == 0 {
		return "", ErrNoJoins
	}

	joins := make([]*Join, 0, len(b.joins))
	columns := append([]core.Column(nil), b.columns...)
	for _, jb := range b.joins {
		j, err := jb.Build()
		if err != nil {
			return "", err
		}
		joins = append(joins, j)
		columns = append(columns, j.Selected...)
	}
	if len(columns) == 0 {
		return "", ErrNoSelectedColumns
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(columnAliases(columns))
	sb.WriteString(" FROM ")
	sb.WriteString(b.schema.QualifiedName())
	for _, j := range joins {
		sb.WriteString(" ")
		sb.WriteString(j.SQL(b.schema.NamespaceName()))
	}

	var chains []string
	if b.where.Len() > 0 {
		chains = append(chains, b.where.String())
	}
	for _, j := range joins {
		if j.where.Len() > 0 {
			chains = append(chains, j.where.String())
		}
	}
	switch len(chains) {
	case 0:
	case 1:
		sb.WriteString(" WHERE ")
		sb.WriteString(chains[0])
	default:
		sb.WriteString(" WHERE (")
		sb.WriteString(strings.Join(chains, ") AND ("))
		sb.WriteString(")")
	}

	return sb.String(), nil
}
