// Package dialect provides the DuckDB dialect definition.
package dialect

import (
	"github.com/leapstack-labs/leaptable/pkg/core"
	"github.com/leapstack-labs/leaptable/pkg/dialect"
)

func init() {
	dialect.Register(DuckDB)
}

// DuckDB is the DuckDB dialect configuration. DuckDB has no SERIAL type, so
// serial columns draw from a per-column sequence created ahead of the table.
// The sequence outlives DROP TABLE and is reused on re-create.
var DuckDB = dialect.NewDialect("duckdb").
	DefaultSchema("main").
	Type(core.TypeVarChar255, "VARCHAR(255)").
	Type(core.TypeText, "TEXT").
	Type(core.TypeInteger, "INTEGER").
	Type(core.TypeBigInt, "BIGINT").
	Type(core.TypeBoolean, "BOOLEAN").
	Type(core.TypeTimestamp, "TIMESTAMP").
	Type(core.TypeSerial, "INTEGER").
	Serial("INTEGER PRIMARY KEY DEFAULT nextval('{namespace}.{table}_{column}_seq')").
	SerialPrelude("CREATE SEQUENCE IF NOT EXISTS {namespace}.{table}_{column}_seq").
	TableExists("SELECT EXISTS (SELECT 1 FROM information_schema.tables " +
		"WHERE table_schema = '{namespace}' AND table_name = '{table}')").
	Build()
