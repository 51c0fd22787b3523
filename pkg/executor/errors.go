package executor

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// QueryError reports a statement the database rejected.
type QueryError struct {
	StatementID string
	Statement   string

	// Code is the engine's error code when known: the SQLSTATE for
	// PostgreSQL, the extended result code for SQLite.
	Code string

	// Constraint names the violated constraint when the engine reports it.
	Constraint string

	// Violation is true for integrity constraint violations
	// (unique, foreign key, not null, check).
	Violation bool

	Err error
}

func (e *QueryError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("statement %s failed on constraint %s: %v", e.StatementID, e.Constraint, e.Err)
	}
	return fmt.Sprintf("statement %s failed: %v", e.StatementID, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

func newQueryError(id, stmt string, err error) *QueryError {
	qe := &QueryError{StatementID: id, Statement: stmt, Err: err}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		qe.Code = pgErr.Code
		qe.Constraint = pgErr.ConstraintName
		// Class 23: integrity constraint violation.
		qe.Violation = len(pgErr.Code) == 5 && pgErr.Code[:2] == "23"
		return qe
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		qe.Code = strconv.Itoa(liteErr.Code())
		qe.Violation = liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return qe
}
