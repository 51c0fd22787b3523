package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/leaptable/pkg/core"
	"github.com/leapstack-labs/leaptable/pkg/statement"
)

// filter is one parsed --where/--or argument.
type filter struct {
	column core.Column
	op     statement.Operator
	value  any
	or     bool
}

// operators in match order; two-character forms come first.
var operators = []struct {
	token string
	op    statement.Operator
}{
	{"<=", statement.LessOrEqual},
	{">=", statement.GreaterOrEqual},
	{"!=", statement.NotEquals},
	{"<>", statement.NotEquals},
	{"=", statement.Equals},
	{"<", statement.LessThan},
	{">", statement.GreaterThan},
	{"~", statement.Like},
}

// parseFilter parses "column<op>value" against schema.
func parseFilter(schema *core.Schema, arg string) (filter, error) {
	i := strings.IndexAny(arg, "=!<>~")
	if i <= 0 {
		return filter{}, fmt.Errorf("invalid filter %q: expected column<op>value", arg)
	}

	rest := arg[i:]
	for _, o := range operators {
		if !strings.HasPrefix(rest, o.token) {
			continue
		}
		col, err := lookupColumn(schema, arg[:i])
		if err != nil {
			return filter{}, err
		}
		value, err := parseValue(col, rest[len(o.token):])
		if err != nil {
			return filter{}, err
		}
		return filter{column: col, op: o.op, value: value}, nil
	}
	return filter{}, fmt.Errorf("invalid filter %q: unknown operator", arg)
}

// parseFilters parses the ANDed --where arguments followed by the --or arguments.
func parseFilters(schema *core.Schema, where, or []string) ([]filter, error) {
	filters := make([]filter, 0, len(where)+len(or))
	for _, arg := range where {
		f, err := parseFilter(schema, arg)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	for _, arg := range or {
		f, err := parseFilter(schema, arg)
		if err != nil {
			return nil, err
		}
		f.or = true
		filters = append(filters, f)
	}
	return filters, nil
}

// whereable is implemented by the builders that accept a WHERE chain.
type whereable[B any] interface {
	Where(col core.Column, op statement.Operator, value any) B
	And(col core.Column, op statement.Operator, value any) B
	Or(col core.Column, op statement.Operator, value any) B
}

// applyFilters chains filters onto b in order.
func applyFilters[B whereable[B]](b B, filters []filter) B {
	for i, f := range filters {
		switch {
		case i == 0:
			b = b.Where(f.column, f.op, f.value)
		case f.or:
			b = b.Or(f.column, f.op, f.value)
		default:
			b = b.And(f.column, f.op, f.value)
		}
	}
	return b
}

// assignment is one parsed --set argument.
type assignment struct {
	column core.Column
	value  any
}

func parseAssignments(schema *core.Schema, args []string) ([]assignment, error) {
	out := make([]assignment, 0, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected column=value", arg)
		}
		col, err := lookupColumn(schema, name)
		if err != nil {
			return nil, err
		}
		value, err := parseValue(col, raw)
		if err != nil {
			return nil, err
		}
		out = append(out, assignment{column: col, value: value})
	}
	return out, nil
}

func lookupColumn(schema *core.Schema, name string) (core.Column, error) {
	name = strings.TrimSpace(name)
	col, ok := schema.Column(name)
	if !ok {
		return core.Column{}, fmt.Errorf("table %s has no column %q", schema.QualifiedName(), name)
	}
	return col, nil
}

// parseValue converts a command-line value to the column's Go type.
// The bare word NULL is the SQL null.
func parseValue(col core.Column, raw string) (any, error) {
	if raw == "NULL" {
		return nil, nil
	}
	switch col.Type() {
	case core.TypeInteger, core.TypeBigInt, core.TypeSerial:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s expects an integer, got %q", col.Name(), raw)
		}
		return n, nil
	case core.TypeBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("column %s expects a boolean, got %q", col.Name(), raw)
		}
		return b, nil
	}
	return raw, nil
}
