package duckdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leaptable/pkg/adapter"
	"github.com/leapstack-labs/leaptable/pkg/core"
	"github.com/leapstack-labs/leaptable/pkg/statement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapter_Connect(t *testing.T) {
	tests := []struct {
		name      string
		setupPath func(t *testing.T) string
		verify    func(t *testing.T, path string)
	}{
		{
			name: "in-memory",
			setupPath: func(_ *testing.T) string {
				return ":memory:"
			},
		},
		{
			name: "file-based",
			setupPath: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "test.duckdb")
			},
			verify: func(t *testing.T, path string) {
				_, err := os.Stat(path)
				assert.False(t, os.IsNotExist(err), "database file was not created")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			adp := New(nil)

			dbPath := tt.setupPath(t)
			require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: dbPath}))
			defer func() { _ = adp.Close() }()

			if tt.verify != nil {
				tt.verify(t, dbPath)
			}
		})
	}
}

func TestAdapter_ConnectWithSettings(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)

	require.NoError(t, adp.Connect(ctx, core.AdapterConfig{
		Params: map[string]any{"settings": map[string]any{"threads": 1}},
	}))
	defer func() { _ = adp.Close() }()

	var threads int
	require.NoError(t, adp.DB.QueryRowContext(ctx, "SELECT current_setting('threads')").Scan(&threads))
	assert.Equal(t, 1, threads)
}

func TestAdapter_ConnectInvalidParams(t *testing.T) {
	err := New(nil).Connect(context.Background(), core.AdapterConfig{
		Params: map[string]any{"bogus": true},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duckdb params")
}

func TestAdapter_NotConnected(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)

	_, err := adp.Exec(ctx, "SELECT 1")
	require.ErrorIs(t, err, adapter.ErrNotConnected)

	_, err = adp.Query(ctx, "SELECT 1")
	require.ErrorIs(t, err, adapter.ErrNotConnected)
}

func TestAdapter_Close(t *testing.T) {
	tests := []struct {
		name    string
		connect bool
	}{
		{"close without connect", false},
		{"close after connect", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			adp := New(nil)

			if tt.connect {
				require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: ":memory:"}))
			}

			assert.NoError(t, adp.Close())
		})
	}
}

func TestAdapter_SerialTableLifecycle(t *testing.T) {
	ctx := context.Background()
	adp := New(nil)
	require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: ":memory:"}))
	defer func() { _ = adp.Close() }()

	email := core.NewColumn("email", core.TypeVarChar255, true)
	users := core.NewSchema("main", "users",
		core.NewColumn("id", core.TypeSerial, false),
		email,
	)

	ddl, err := statement.CreateTable(users, adp.Dialect())
	require.NoError(t, err)
	_, err = adp.Exec(ctx, ddl)
	require.NoError(t, err)

	for _, addr := range []string{"john.doe@gmail.com", "jane.doe@gmail.com"} {
		insert, err := statement.NewInsert(users).Set(email, addr).ReturningAll().Build()
		require.NoError(t, err)

		rows, err := adp.Query(ctx, insert)
		require.NoError(t, err)
		require.True(t, rows.Next())
		var id int
		var got string
		require.NoError(t, rows.Scan(&id, &got))
		require.NoError(t, rows.Close())
		assert.Equal(t, addr, got)
		assert.Positive(t, id)
	}

	exists, err := statement.TableExists(users, adp.Dialect())
	require.NoError(t, err)
	var ok bool
	require.NoError(t, adp.DB.QueryRowContext(ctx, exists).Scan(&ok))
	assert.True(t, ok)

	drop, err := statement.DropTable(users, adp.Dialect())
	require.NoError(t, err)
	_, err = adp.Exec(ctx, drop)
	require.NoError(t, err)

	// The sequence survives the drop, so the table can be re-created.
	_, err = adp.Exec(ctx, ddl)
	require.NoError(t, err)
}

func TestAdapter_GetTableMetadata(t *testing.T) {
	tests := []struct {
		name        string
		setupTable  func(t *testing.T, ctx context.Context, adp *Adapter)
		tableName   string
		wantErr     bool
		wantColumns int
		wantRows    int64
		checkFunc   func(t *testing.T, meta *core.TableMetadata)
	}{
		{
			name: "existing table with data",
			setupTable: func(t *testing.T, ctx context.Context, adp *Adapter) {
				_, err := adp.Exec(ctx, `
					CREATE TABLE products (
						product_id INTEGER NOT NULL,
						name VARCHAR,
						price DOUBLE,
						in_stock BOOLEAN
					)
				`)
				require.NoError(t, err)
				_, err = adp.Exec(ctx, `
					INSERT INTO products VALUES
						(1, 'Widget', 9.99, true),
						(2, 'Gadget', 19.99, false)
				`)
				require.NoError(t, err)
			},
			tableName:   "products",
			wantColumns: 4,
			wantRows:    2,
			checkFunc: func(t *testing.T, meta *core.TableMetadata) {
				assert.Equal(t, "products", meta.Name)
				assert.Equal(t, "main", meta.Schema)

				expectedColumns := map[string]string{
					"product_id": "INTEGER",
					"name":       "VARCHAR",
					"price":      "DOUBLE",
					"in_stock":   "BOOLEAN",
				}

				for _, col := range meta.Columns {
					expectedType, ok := expectedColumns[col.Name]
					if !ok {
						t.Errorf("unexpected column: %s", col.Name)
						continue
					}
					assert.Equal(t, expectedType, col.Type, "column %s", col.Name)
				}
				assert.False(t, meta.Columns[0].Nullable)
			},
		},
		{
			name:      "nonexistent table",
			tableName: "nonexistent_table",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			adp := New(nil)

			require.NoError(t, adp.Connect(ctx, core.AdapterConfig{Path: ":memory:"}))
			defer func() { _ = adp.Close() }()

			if tt.setupTable != nil {
				tt.setupTable(t, ctx, adp)
			}

			metadata, err := adp.GetTableMetadata(ctx, tt.tableName)

			if tt.wantErr {
				require.ErrorIs(t, err, adapter.ErrTableNotFound)
				return
			}

			require.NoError(t, err)
			assert.Len(t, metadata.Columns, tt.wantColumns)
			assert.Equal(t, tt.wantRows, metadata.RowCount)

			if tt.checkFunc != nil {
				tt.checkFunc(t, metadata)
			}
		})
	}
}

func TestAdapter_Registry(t *testing.T) {
	factory, ok := adapter.Get("duckdb")
	require.True(t, ok)

	duck, ok := factory(nil).(*Adapter)
	require.True(t, ok, "factory should return *Adapter")
	assert.Equal(t, "duckdb", duck.Dialect().Name)
	assert.Equal(t, "main", duck.Dialect().DefaultSchema)
}
