package table

import (
	"errors"
	"fmt"
)

// Kind classifies a controller failure.
type Kind int

// Failure kinds.
const (
	// KindValidation: the request does not fit the schema (missing required
	// or unknown columns). Nothing was sent to the database.
	KindValidation Kind = iota + 1
	// KindBuild: the statement builder rejected its input.
	KindBuild
	// KindExecution: the database or driver failed the statement.
	KindExecution
	// KindDecode: one or more rows could not be decoded into T.
	KindDecode
	// KindNotFound: an insert returned no row to hand back.
	KindNotFound
	// KindShape: the response payload was not of the expected container type.
	KindShape
)

// Sentinels matching each kind with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrBuild      = errors.New("build failed")
	ErrExecution  = errors.New("execution failed")
	ErrDecode     = errors.New("decode failed")
	ErrNotFound   = errors.New("not found")
	ErrShape      = errors.New("unexpected result shape")
)

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindBuild:
		return ErrBuild
	case KindExecution:
		return ErrExecution
	case KindDecode:
		return ErrDecode
	case KindNotFound:
		return ErrNotFound
	case KindShape:
		return ErrShape
	default:
		return nil
	}
}

// String returns the kind name.
func (k Kind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned by every Controller operation that fails.
type Error struct {
	Kind  Kind
	Op    string
	Table string

	// Constraint is the violated constraint reported by the database, if any.
	Constraint string

	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Op, e.Table, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the kind of a controller error, or 0 when err is not one.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return 0
}
