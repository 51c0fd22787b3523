package core

// Schema describes one table: its namespace, name and columns.
//
// A Schema is built once and never mutated, so a single instance can be
// shared by any number of controllers and builders across goroutines.
type Schema struct {
	namespace string
	table     string
	columns   []Column
	byName    map[string]int
}

// NewSchema creates a schema. Columns keep their declaration order; a later
// column with a name already seen replaces the earlier one.
func NewSchema(namespace, table string, columns ...Column) *Schema {
	s := &Schema{
		namespace: namespace,
		table:     table,
		byName:    make(map[string]int, len(columns)),
	}
	for _, col := range columns {
		col.table = ""
		if i, ok := s.byName[col.name]; ok {
			s.columns[i] = col
			continue
		}
		s.byName[col.name] = len(s.columns)
		s.columns = append(s.columns, col)
	}
	return s
}

// TableName returns the table name.
func (s *Schema) TableName() string { return s.table }

// NamespaceName returns the namespace (database schema) the table lives in.
func (s *Schema) NamespaceName() string { return s.namespace }

// QualifiedName returns "namespace.table", or just the table when no namespace is set.
func (s *Schema) QualifiedName() string {
	if s.namespace == "" {
		return s.table
	}
	return s.namespace + "." + s.table
}

// WithNamespace returns a copy of the schema placed in namespace.
func (s *Schema) WithNamespace(namespace string) *Schema {
	return NewSchema(namespace, s.table, s.columns...)
}

// Columns returns a copy of the columns in declaration order.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Column looks up a column by name.
func (s *Schema) Column(name string) (Column, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}

// Has reports whether the schema declares a column with the same name as col.
func (s *Schema) Has(col Column) bool {
	_, ok := s.byName[col.name]
	return ok
}

// RequiredColumns returns the columns an insert must supply.
func (s *Schema) RequiredColumns() []Column {
	var out []Column
	for _, col := range s.columns {
		if col.required {
			out = append(out, col)
		}
	}
	return out
}

// Ref returns col qualified with this schema's table name, for use in joins.
func (s *Schema) Ref(col Column) Column {
	return col.In(s.table)
}
