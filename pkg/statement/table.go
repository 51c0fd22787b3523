package statement

import (
	"strings"

	"github.com/leapstack-labs/leaptable/pkg/core"
	"github.com/leapstack-labs/leaptable/pkg/dialect"
)

// CreateTable renders the DDL creating schema's table. Dialects that need
// helper objects for serial columns (DuckDB sequences) get them emitted first,
// separated by "; ".
//
// Every DDL statement resolves an empty namespace to the dialect's default
// schema, so CreateTable, DropTable and TableExists always name the same table.
func CreateTable(schema *core.Schema, d *dialect.Dialect) (string, error) {
	if d == nil {
		return "", dialect.ErrDialectRequired
	}
	cols := schema.Columns()
	if len(cols) == 0 {
		return "", ErrNoColumns
	}

	namespace := namespaceOrDefault(schema, d)

	var prelude []string
	defs := make([]string, 0, len(cols))
	for _, col := range cols {
		if p := d.SerialPrelude(namespace, schema.TableName(), col); p != "" {
			prelude = append(prelude, p)
		}
		def, err := d.ColumnDefinition(namespace, schema.TableName(), col)
		if err != nil {
			return "", err
		}
		defs = append(defs, def)
	}

	create := "CREATE TABLE " + ddlName(schema, d) + " (" + strings.Join(defs, ", ") + ")"
	return strings.Join(append(prelude, create), "; "), nil
}

// DropTable renders "DROP TABLE <ns>.<table>".
func DropTable(schema *core.Schema, d *dialect.Dialect) (string, error) {
	if d == nil {
		return "", dialect.ErrDialectRequired
	}
	return "DROP TABLE " + ddlName(schema, d), nil
}

// TableExists renders the dialect's catalog query for schema's table.
func TableExists(schema *core.Schema, d *dialect.Dialect) (string, error) {
	if d == nil {
		return "", dialect.ErrDialectRequired
	}
	return d.TableExistsQuery(namespaceOrDefault(schema, d), schema.TableName()), nil
}

func namespaceOrDefault(schema *core.Schema, d *dialect.Dialect) string {
	if ns := schema.NamespaceName(); ns != "" {
		return ns
	}
	return d.DefaultSchema
}

func ddlName(schema *core.Schema, d *dialect.Dialect) string {
	if ns := namespaceOrDefault(schema, d); ns != "" {
		return ns + "." + schema.TableName()
	}
	return schema.TableName()
}
