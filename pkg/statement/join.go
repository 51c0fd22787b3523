package statement

import (
	"github.com/leapstack-labs/leaptable/pkg/core"
)

// JoinType is the kind of join.
type JoinType int

// Join types.
const (
	joinUnset JoinType = iota
	JoinInner
)

// String returns the SQL keyword for the join type.
func (t JoinType) String() string {
	switch t {
	case JoinInner:
		return "INNER JOIN"
	default:
		return ""
	}
}

// Join describes one join relationship: the joined table is the table of
// the To column, matched on From = To.
type Join struct {
	Type     JoinType
	From     core.Column
	To       core.Column
	Selected []core.Column
	where    WhereChain
}

// SQL renders "<TYPE> <namespace>.<table> ON <from> = <to>".
func (j *Join) SQL(namespace string) string {
	table := j.To.Table()
	if namespace != "" {
		table = namespace + "." + table
	}
	return j.Type.String() + " " + table + " ON " + j.From.Reference() + " = " + j.To.Reference()
}

// Where returns the join's own predicate chain, possibly empty.
func (j *Join) Where() *WhereChain {
	return &j.where
}

// JoinBuilder accumulates a Join.
type JoinBuilder struct {
	join    Join
	hasFrom bool
	hasTo   bool
}

// NewJoin creates an empty join builder.
func NewJoin() *JoinBuilder {
	return &JoinBuilder{}
}

// InnerJoin is shorthand for NewJoin().InnerJoin().From(from).To(to).
func InnerJoin(from, to core.Column) *JoinBuilder {
	return NewJoin().InnerJoin().From(from).To(to)
}

// InnerJoin sets the join type to INNER.
func (b *JoinBuilder) InnerJoin() *JoinBuilder {
	b.join.Type = JoinInner
	return b
}

// From sets the column on the already-joined side.
func (b *JoinBuilder) From(col core.Column) *JoinBuilder {
	b.join.From = col
	b.hasFrom = true
	return b
}

// To sets the column of the table being joined. It must be table-qualified.
func (b *JoinBuilder) To(col core.Column) *JoinBuilder {
	b.join.To = col
	b.hasTo = true
	return b
}

// Select adds columns to the projection of the enclosing statement.
func (b *JoinBuilder) Select(cols ...core.Column) *JoinBuilder {
	b.join.Selected = append(b.join.Selected, cols...)
	return b
}

// Where starts the join's predicate chain.
func (b *JoinBuilder) Where(col core.Column, op Operator, value any) *JoinBuilder {
	b.join.where.Where(NewWhereClause(col, op, value))
	return b
}

// And extends the join's predicate chain with AND.
func (b *JoinBuilder) And(col core.Column, op Operator, value any) *JoinBuilder {
	b.join.where.And(NewWhereClause(col, op, value))
	return b
}

// Or extends the join's predicate chain with OR.
func (b *JoinBuilder) Or(col core.Column, op Operator, value any) *JoinBuilder {
	b.join.where.Or(NewWhereClause(col, op, value))
	return b
}

// Build validates the descriptor.
func (b *JoinBuilder) Build() (*Join, error) {
	if !b.hasFrom || !b.hasTo {
		return nil, ErrJoinMissingColumn
	}
	if b.join.Type == joinUnset {
		return nil, ErrJoinMissingType
	}
	if b.join.To.Table() == "" {
		return nil, ErrJoinUnqualified
	}
	if err := b.join.where.Err(); err != nil {
		return nil, err
	}

	j := b.join
	j.Selected = append([]core.Column(nil), b.join.Selected...)
	return &j, nil
}
