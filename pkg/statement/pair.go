package statement

import (
	"strings"

	"github.com/leapstack-labs/leaptable/pkg/core"
)

// ColumnValuePair is a single column assignment used by inserts and updates.
type ColumnValuePair struct {
	Column core.Column
	Value  any
}

func pairColumns(pairs []ColumnValuePair) string {
	names := make([]string, len(pairs))
	for i, p := range pairs {
		names[i] = p.Column.Name()
	}
	return strings.Join(names, ", ")
}

func pairValues(pairs []ColumnValuePair) string {
	values := make([]string, len(pairs))
	for i, p := range pairs {
		values[i] = formatValue(p.Value)
	}
	return strings.Join(values, ", ")
}

func pairAssignments(pairs []ColumnValuePair) string {
	sets := make([]string, len(pairs))
	for i, p := range pairs {
		sets[i] = p.Column.Name() + " = " + formatValue(p.Value)
	}
	return strings.Join(sets, ", ")
}

func columnNames(cols []core.Column) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name()
	}
	return strings.Join(names, ", ")
}

func columnRefs(cols []core.Column) string {
	refs := make([]string, len(cols))
	for i, c := range cols {
		refs[i] = c.Reference()
	}
	return strings.Join(refs, ", ")
}

// columnAliases renders table-qualified columns as `t.c AS "t.c"` so each
// result column carries a unique name that matches `db:"t.c"` tags.
func columnAliases(cols []core.Column) string {
	refs := make([]string, len(cols))
	for i, c := range cols {
		ref := c.Reference()
		if c.Table() != "" {
			ref += ` AS "` + ref + `"`
		}
		refs[i] = ref
	}
	return strings.Join(refs, ", ")
}
