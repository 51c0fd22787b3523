// Package dialect provides the PostgreSQL dialect definition.
// It has no driver dependencies so tools can render DDL without connecting.
package dialect

import (
	"github.com/leapstack-labs/leaptable/pkg/core"
	"github.com/leapstack-labs/leaptable/pkg/dialect"
)

func init() {
	dialect.Register(Postgres)
}

// Postgres is the PostgreSQL dialect configuration.
var Postgres = dialect.NewDialect("postgres").
	DefaultSchema("public").
	Type(core.TypeVarChar255, "VARCHAR(255)").
	Type(core.TypeText, "TEXT").
	Type(core.TypeInteger, "INTEGER").
	Type(core.TypeBigInt, "BIGINT").
	Type(core.TypeBoolean, "BOOLEAN").
	Type(core.TypeTimestamp, "TIMESTAMP").
	Type(core.TypeSerial, "SERIAL").
	Serial("SERIAL PRIMARY KEY").
	TableExists("SELECT EXISTS (SELECT 1 FROM information_schema.tables " +
		"WHERE table_schema = '{namespace}' AND table_name = '{table}')").
	Build()
