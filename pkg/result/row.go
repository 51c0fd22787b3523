// Package result turns raw database rows into typed values.
//
// An executor hands a Raw result to a Deserializer, which produces a
// Response whose Payload is narrowed by the caller with Cast or CastList.
// Row decoding is per row: a row that cannot be decoded is either dropped
// or reported, depending on the Policy, without failing its neighbours.
package result

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cell is one named value of a row.
type Cell struct {
	Name  string
	Value any
}

// Row is a result row in column order. Names are the driver's column names,
// so joined tables may produce duplicates.
type Row []Cell

// Len returns the number of cells.
func (r Row) Len() int {
	return len(r)
}

// Get returns the value of the first cell called name.
func (r Row) Get(name string) (any, bool) {
	for _, c := range r {
		if c.Name == name {
			return c.Value, true
		}
	}
	return nil, false
}

// Names returns the column names in order.
func (r Row) Names() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Name
	}
	return out
}

// Values returns the cell values in order.
func (r Row) Values() []any {
	out := make([]any, len(r))
	for i, c := range r {
		out[i] = c.Value
	}
	return out
}

// Map returns the row keyed by column name. On duplicate names the first
// cell wins, matching Get.
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r))
	for _, c := range r {
		if _, ok := out[c.Name]; !ok {
			out[c.Name] = c.Value
		}
	}
	return out
}

// String returns the named value as a string. Non-string values are
// formatted with fmt; NULL is reported as missing.
func (r Row) String(name string) (string, bool) {
	v, ok := r.Get(name)
	if !ok || v == nil {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case []byte:
		return string(val), true
	default:
		return fmt.Sprint(val), true
	}
}

// Int64 returns the named value as an int64, converting other integer
// kinds and numeric strings.
func (r Row) Int64(name string) (int64, bool) {
	v, ok := r.Get(name)
	if !ok {
		return 0, false
	}
	return toInt64(v)
}

// Bool returns the named value as a bool. Integers are true when non-zero;
// strings accept the spellings strconv.ParseBool does plus "t"/"f".
func (r Row) Bool(name string) (bool, bool) {
	v, ok := r.Get(name)
	if !ok {
		return false, false
	}
	return toBool(v)
}

func toInt64(v any) (int64, bool) {
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	case int32:
		return int64(val), true
	case int16:
		return int64(val), true
	case int8:
		return int64(val), true
	case uint64:
		return int64(val), val <= math.MaxInt64
	case uint:
		return int64(val), uint64(val) <= math.MaxInt64
	case uint32:
		return int64(val), true
	case uint16:
		return int64(val), true
	case uint8:
		return int64(val), true
	case float64:
		return int64(val), val == float64(int64(val))
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		return n, err == nil
	case []byte:
		n, err := strconv.ParseInt(strings.TrimSpace(string(val)), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func toBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		return b, err == nil
	case []byte:
		b, err := strconv.ParseBool(strings.TrimSpace(string(val)))
		return b, err == nil
	}
	if n, ok := toInt64(v); ok {
		return n != 0, true
	}
	return false, false
}
