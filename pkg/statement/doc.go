// Package statement renders schema-aware SQL statement text.
//
// Every builder is a single-use accumulator: fill it, call Build, discard it.
// Values are interpolated as single-quoted literals; no placeholders are
// emitted. WHERE chains are flat: clauses render in the order they were
// added with their AND/OR connectors and no precedence grouping, so
// Where(a).And(b).Or(c) renders exactly "a AND b OR c".
package statement
