package statement

import (
	"errors"
	"fmt"
)

// ErrBuild is the parent of every builder validation error.
var ErrBuild = errors.New("statement build failed")

// Builder validation errors. All of them satisfy errors.Is(err, ErrBuild).
var (
	ErrNoValues          = fmt.Errorf("%w: no column values", ErrBuild)
	ErrNoColumns         = fmt.Errorf("%w: schema declares no columns", ErrBuild)
	ErrEmptyChain        = fmt.Errorf("%w: AND/OR requires a preceding WHERE", ErrBuild)
	ErrChainStarted      = fmt.Errorf("%w: WHERE already set, use AND/OR to extend it", ErrBuild)
	ErrUnscoped          = fmt.Errorf("%w: statement has no WHERE clause", ErrBuild)
	ErrNoJoins           = fmt.Errorf("%w: join statement has no joins", ErrBuild)
	ErrNoSelectedColumns = fmt.Errorf("%w: no columns selected", ErrBuild)
	ErrJoinMissingColumn = fmt.Errorf("%w: join requires both from and to columns", ErrBuild)
	ErrJoinMissingType   = fmt.Errorf("%w: join type not set", ErrBuild)
	ErrJoinUnqualified   = fmt.Errorf("%w: join target column has no table qualifier", ErrBuild)
)
