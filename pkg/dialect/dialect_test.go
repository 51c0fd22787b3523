package dialect

import (
	"testing"

	"github.com/leapstack-labs/leaptable/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDialect() *Dialect {
	return NewDialect("test").
		DefaultSchema("main").
		Type(core.TypeVarChar255, "VARCHAR(255)").
		Type(core.TypeInteger, "INTEGER").
		Serial("INTEGER PRIMARY KEY DEFAULT nextval('{namespace}.{table}_{column}_seq')").
		SerialPrelude("CREATE SEQUENCE IF NOT EXISTS {namespace}.{table}_{column}_seq").
		TableExists("SELECT EXISTS (SELECT 1 FROM catalog WHERE ns = '{namespace}' AND name = '{table}')").
		Build()
}

func TestDialect_ColumnDefinition(t *testing.T) {
	d := testDialect()

	tests := []struct {
		name    string
		col     core.Column
		want    string
		wantErr bool
	}{
		{
			name: "optional column",
			col:  core.NewColumn("nickname", core.TypeVarChar255, false),
			want: "nickname VARCHAR(255)",
		},
		{
			name: "required column",
			col:  core.NewColumn("email", core.TypeVarChar255, true),
			want: "email VARCHAR(255) NOT NULL",
		},
		{
			name: "serial column",
			col:  core.NewColumn("id", core.TypeSerial, false),
			want: "id INTEGER PRIMARY KEY DEFAULT nextval('main.users_id_seq')",
		},
		{
			name:    "unsupported type",
			col:     core.NewColumn("flag", core.TypeBoolean, false),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.ColumnDefinition("main", "users", tt.col)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "does not support column type boolean")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDialect_SerialPrelude(t *testing.T) {
	d := testDialect()

	assert.Equal(t, "CREATE SEQUENCE IF NOT EXISTS main.users_id_seq",
		d.SerialPrelude("main", "users", core.NewColumn("id", core.TypeSerial, false)))
	assert.Empty(t, d.SerialPrelude("main", "users", core.NewColumn("email", core.TypeVarChar255, true)))

	plain := NewDialect("plain").Build()
	assert.Empty(t, plain.SerialPrelude("main", "users", core.NewColumn("id", core.TypeSerial, false)))
}

func TestDialect_TableExistsQueryEscapes(t *testing.T) {
	d := testDialect()

	assert.Equal(t,
		"SELECT EXISTS (SELECT 1 FROM catalog WHERE ns = 'main' AND name = 'o''brien')",
		d.TableExistsQuery("main", "o'brien"))
}

func TestQuoteLiteral(t *testing.T) {
	assert.Equal(t, "'plain'", QuoteLiteral("plain"))
	assert.Equal(t, "'it''s'", QuoteLiteral("it's"))
	assert.Equal(t, "''", QuoteLiteral(""))
}

func TestRegistry(t *testing.T) {
	d := NewDialect("Registry_Test").DefaultSchema("x").Build()
	Register(d)

	got, ok := Get("registry_test")
	require.True(t, ok, "lookup is case-insensitive")
	assert.Same(t, d, got)
	assert.Contains(t, List(), "registry_test")

	_, ok = Get("never-registered")
	assert.False(t, ok)
}

func TestRegister_Rejects(t *testing.T) {
	assert.Panics(t, func() { Register(nil) })
	assert.Panics(t, func() { Register(NewDialect("").Build()) })

	Register(NewDialect("twice_test").Build())
	assert.Panics(t, func() { Register(NewDialect("TWICE_TEST").Build()) })
}

func TestResolve(t *testing.T) {
	Register(NewDialect("resolve_test").DefaultSchema("r").Build())

	d, err := Resolve("Resolve_Test")
	require.NoError(t, err)
	assert.Equal(t, "r", d.DefaultSchema)

	_, err = Resolve(" ")
	require.ErrorIs(t, err, ErrDialectRequired)

	_, err = Resolve("oracle")
	require.ErrorIs(t, err, ErrUnknownDialect)
	assert.Contains(t, err.Error(), "resolve_test")
}
