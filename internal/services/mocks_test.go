package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ttnppedr/banking-system/internal/database"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, eventType string, data any) error {
	args := m.Called(ctx, eventType, data)
	return args.Error(0)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordOperation(kind, outcome string) {
	m.Called(kind, outcome)
}

var (
	accountCols = []string{"id", "name", "balance", "created_at", "updated_at"}
	viewCols    = []string{
		"id", "type", "amount", "user_id", "from_id", "to_id", "created_at", "updated_at",
		"u_id", "u_name", "u_balance", "u_created_at", "u_updated_at",
		"f_id", "f_name", "f_balance", "f_created_at", "f_updated_at",
		"r_id", "r_name", "r_balance", "r_created_at", "r_updated_at",
	}
)

func newMockStore(t *testing.T) (*database.Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewStore(db), mock
}
