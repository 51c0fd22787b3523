// Package dialect provides the SQLite dialect definition.
package dialect

import (
	"github.com/leapstack-labs/leaptable/pkg/core"
	"github.com/leapstack-labs/leaptable/pkg/dialect"
)

func init() {
	dialect.Register(SQLite)
}

// SQLite is the SQLite dialect configuration. The default namespace is the
// main database; other namespaces must be ATTACHed databases. The catalog
// query answers 0 or 1.
var SQLite = dialect.NewDialect("sqlite").
	DefaultSchema("main").
	Type(core.TypeVarChar255, "VARCHAR(255)").
	Type(core.TypeText, "TEXT").
	Type(core.TypeInteger, "INTEGER").
	Type(core.TypeBigInt, "BIGINT").
	Type(core.TypeBoolean, "BOOLEAN").
	Type(core.TypeTimestamp, "TIMESTAMP").
	Type(core.TypeSerial, "INTEGER").
	Serial("INTEGER PRIMARY KEY AUTOINCREMENT").
	TableExists("SELECT EXISTS (SELECT 1 FROM {namespace}.sqlite_master " +
		"WHERE type = 'table' AND name = '{table}')").
	Build()
