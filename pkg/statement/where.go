package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/leapstack-labs/leaptable/pkg/core"
	"github.com/leapstack-labs/leaptable/pkg/dialect"
)

// Operator is a comparison operator of a WHERE clause.
type Operator string

// Supported operators.
const (
	Equals         Operator = "="
	NotEquals      Operator = "<>"
	LessThan       Operator = "<"
	LessOrEqual    Operator = "<="
	GreaterThan    Operator = ">"
	GreaterOrEqual Operator = ">="
	Like           Operator = "LIKE"
)

// Connector joins a clause to the one before it.
type Connector string

// Logical connectors.
const (
	And Connector = "AND"
	Or  Connector = "OR"
)

// WhereClause is a single "<column> <operator> <value>" predicate.
type WhereClause struct {
	Column   core.Column
	Operator Operator
	Value    any
}

// NewWhereClause creates a predicate.
func NewWhereClause(col core.Column, op Operator, value any) WhereClause {
	return WhereClause{Column: col, Operator: op, Value: value}
}

// String renders the predicate, e.g. "email = 'john.doe@gmail.com'".
func (w WhereClause) String() string {
	return w.Column.Reference() + " " + string(w.Operator) + " " + formatValue(w.Value)
}

type link struct {
	connector Connector
	clause    WhereClause
}

// WhereChain is an ordered sequence of predicates joined by AND/OR.
// The zero value is an empty chain.
type WhereChain struct {
	links []link
	err   error
}

// Where starts the chain. It must be the first call.
func (c *WhereChain) Where(clause WhereClause) {
	if len(c.links) > 0 {
		c.fail(ErrChainStarted)
		return
	}
	c.links = append(c.links, link{clause: clause})
}

// And extends the chain with an AND predicate.
func (c *WhereChain) And(clause WhereClause) {
	c.extend(And, clause)
}

// Or extends the chain with an OR predicate.
func (c *WhereChain) Or(clause WhereClause) {
	c.extend(Or, clause)
}

func (c *WhereChain) extend(conn Connector, clause WhereClause) {
	if len(c.links) == 0 {
		c.fail(ErrEmptyChain)
		return
	}
	c.links = append(c.links, link{connector: conn, clause: clause})
}

func (c *WhereChain) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// Len returns the number of predicates in the chain.
func (c *WhereChain) Len() int {
	return len(c.links)
}

// Err returns the first misuse recorded while the chain was assembled.
func (c *WhereChain) Err() error {
	return c.err
}

// String renders the predicates in insertion order. An empty chain renders "".
func (c *WhereChain) String() string {
	var sb strings.Builder
	for i, l := range c.links {
		if i > 0 {
			sb.WriteString(" ")
			sb.WriteString(string(l.connector))
			sb.WriteString(" ")
		}
		sb.WriteString(l.clause.String())
	}
	return sb.String()
}

// whereSuffix renders " WHERE <chain>" or "" for an empty chain.
func (c *WhereChain) whereSuffix() string {
	if len(c.links) == 0 {
		return ""
	}
	return " WHERE " + c.String()
}

// formatValue renders a Go value as a SQL literal.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case []byte:
		return dialect.QuoteLiteral(string(val))
	case time.Time:
		return dialect.QuoteLiteral(val.UTC().Format(time.RFC3339Nano))
	default:
		return dialect.QuoteLiteral(fmt.Sprint(val))
	}
}
