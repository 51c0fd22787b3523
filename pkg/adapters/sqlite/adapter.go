package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/leapstack-labs/leaptable/pkg/adapter"
	sqlitedialect "github.com/leapstack-labs/leaptable/pkg/adapters/sqlite/dialect"
	"github.com/leapstack-labs/leaptable/pkg/core"
	"github.com/leapstack-labs/leaptable/pkg/dialect"

	_ "modernc.org/sqlite" // sqlite driver
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// Dialect returns the SQLite dialect.
func (a *Adapter) Dialect() *dialect.Dialect {
	return sqlitedialect.SQLite
}

// Connect opens the database at cfg.Path, or an in-memory database when the
// path is empty. Foreign keys are always enforced; cfg.Options entries are
// applied as additional pragmas.
func (a *Adapter) Connect(ctx context.Context, cfg core.AdapterConfig) error {
	dsn := buildSQLiteDSN(cfg)

	a.Logger.Debug("connecting to sqlite", slog.String("dsn", dsn))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite connection: %w", err)
	}

	// Every connection to :memory: is a separate database.
	if isMemory(cfg.Path) {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

func isMemory(path string) bool {
	return path == "" || path == MemoryPath
}

// buildSQLiteDSN renders the modernc.org/sqlite DSN: the path followed by
// one _pragma parameter per setting.
func buildSQLiteDSN(cfg core.AdapterConfig) string {
	path := cfg.Path
	if isMemory(path) {
		path = MemoryPath
	}

	pragmas := map[string]string{"foreign_keys": "1"}
	for k, v := range cfg.Options {
		pragmas[k] = v
	}

	keys := make([]string, 0, len(pragmas))
	for k := range pragmas {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make([]string, 0, len(keys))
	for _, k := range keys {
		params = append(params, fmt.Sprintf("_pragma=%s(%s)", k, pragmas[k]))
	}
	return path + "?" + strings.Join(params, "&")
}

// GetTableMetadata reads column metadata with the table_info pragma, which
// SQLite offers in place of information_schema.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*core.TableMetadata, error) {
	if a.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	schema, tableName := adapter.ParseQualifiedName(table, a.Dialect())

	//nolint:gosec // identifiers are quoted as literals
	query := fmt.Sprintf(`SELECT cid, name, type, "notnull" FROM pragma_table_info(%s, %s) ORDER BY cid`,
		dialect.QuoteLiteral(tableName), dialect.QuoteLiteral(schema))

	rows, err := a.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []core.ColumnMetadata
	for rows.Next() {
		var (
			col     core.ColumnMetadata
			cid     int
			notNull int
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Position = cid + 1
		col.Nullable = notNull == 0
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s.%s", adapter.ErrTableNotFound, schema, tableName)
	}

	return &core.TableMetadata{
		Schema:   schema,
		Name:     tableName,
		Columns:  columns,
		RowCount: a.CountRows(ctx, schema+"."+tableName),
	}, nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
