package testutil

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/leaptable/pkg/adapter"
	"github.com/leapstack-labs/leaptable/pkg/core"
	"github.com/leapstack-labs/leaptable/pkg/dialect"
)

// MockAdapter is an adapter.Adapter backed by go-sqlmock.
type MockAdapter struct {
	adapter.BaseSQLAdapter
	dialect *dialect.Dialect
}

// NewMockAdapter returns a connected mock adapter speaking d, and the mock
// used to set statement expectations. Statements are matched literally.
// Unmet expectations fail the test on cleanup.
func NewMockAdapter(t testing.TB, d *dialect.Dialect) (*MockAdapter, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sql expectations: %v", err)
		}
		_ = db.Close()
	})

	return &MockAdapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{DB: db, Logger: NewTestLogger(t)},
		dialect:        d,
	}, mock
}

// Connect is a no-op; the mock is connected on creation.
func (m *MockAdapter) Connect(_ context.Context, cfg core.AdapterConfig) error {
	m.Cfg = cfg
	return nil
}

// GetTableMetadata reads information_schema through the mock.
func (m *MockAdapter) GetTableMetadata(ctx context.Context, table string) (*core.TableMetadata, error) {
	return m.GetTableMetadataCommon(ctx, table, m.dialect)
}

// Dialect returns the dialect given to NewMockAdapter.
func (m *MockAdapter) Dialect() *dialect.Dialect {
	return m.dialect
}

var _ adapter.Adapter = (*MockAdapter)(nil)
