package result

import (
	"errors"
	"fmt"
)

// ErrNoRows is returned by ExistsDeserializer when the catalog query
// produced nothing to inspect.
var ErrNoRows = errors.New("result has no rows")

// Raw is what an executor observed for one statement.
type Raw struct {
	Rows         []Row
	RowsAffected int64
}

// Deserializer turns a Raw result into a Response.
type Deserializer interface {
	Deserialize(raw Raw) (*Response, error)
}

// DeserializerFunc adapts a function to the Deserializer interface.
type DeserializerFunc func(raw Raw) (*Response, error)

// Deserialize calls f(raw).
func (f DeserializerFunc) Deserialize(raw Raw) (*Response, error) {
	return f(raw)
}

// Policy decides what happens to rows that fail to decode.
type Policy int

const (
	// DropFailures discards undecodable rows and counts them in Response.Dropped.
	DropFailures Policy = iota
	// CollectFailures keeps decodable rows and records a *DecodeError per failed row.
	CollectFailures
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case DropFailures:
		return "drop"
	case CollectFailures:
		return "collect"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// DecodeError reports a row that could not be decoded.
type DecodeError struct {
	Index int
	Row   Row
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode row %d: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// RowsDeserializer decodes every row with Decode. The payload is a []any
// holding one T per successfully decoded row, in row order.
type RowsDeserializer[T any] struct {
	Decode func(Row) (T, error)
	Policy Policy
}

// Deserialize implements Deserializer.
func (d RowsDeserializer[T]) Deserialize(raw Raw) (*Response, error) {
	if d.Decode == nil {
		return nil, errors.New("rows deserializer has no decode function")
	}

	resp := &Response{}
	payload := make([]any, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		v, err := d.Decode(row)
		if err != nil {
			if d.Policy == CollectFailures {
				resp.Failures = append(resp.Failures, &DecodeError{Index: i, Row: row, Err: err})
			} else {
				resp.Dropped++
			}
			continue
		}
		payload = append(payload, v)
	}
	resp.Payload = payload
	return resp, nil
}

// UpdateDeserializer reports the affected row count as an int64 payload.
type UpdateDeserializer struct{}

// Deserialize implements Deserializer.
func (UpdateDeserializer) Deserialize(raw Raw) (*Response, error) {
	return &Response{Payload: raw.RowsAffected}, nil
}

// ExistsDeserializer reads the first cell of the first row as a bool payload.
// Engines without a boolean type answer catalog queries with 0/1 or "t"/"f".
type ExistsDeserializer struct{}

// Deserialize implements Deserializer.
func (ExistsDeserializer) Deserialize(raw Raw) (*Response, error) {
	if len(raw.Rows) == 0 || raw.Rows[0].Len() == 0 {
		return nil, ErrNoRows
	}
	cell := raw.Rows[0][0]
	exists, ok := toBool(cell.Value)
	if !ok {
		return nil, fmt.Errorf("cannot interpret %s=%v (%T) as bool", cell.Name, cell.Value, cell.Value)
	}
	return &Response{Payload: exists}, nil
}
