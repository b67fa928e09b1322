package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/ttnppedr/banking-system/internal/models"
)

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, name string, initialBalance int64) (*models.Account, error) {
	args := m.Called(ctx, name, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, filter models.AccountFilter, page models.Pagination) ([]models.Account, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockAccountService) CountAccounts(ctx context.Context, filter models.AccountFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountService) RenameAccount(ctx context.Context, id int64, newName string) (*models.Account, error) {
	args := m.Called(ctx, id, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Apply(ctx context.Context, cmd models.LedgerCommand) (*models.TransactionView, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionView), args.Error(1)
}

type MockTransactionQueries struct {
	mock.Mock
}

func (m *MockTransactionQueries) ListTransactions(ctx context.Context, filter models.TransactionFilter, page models.Pagination) ([]models.TransactionView, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TransactionView), args.Error(1)
}

func (m *MockTransactionQueries) CountTransactions(ctx context.Context, filter models.TransactionFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionQueries) GetTransaction(ctx context.Context, id int64) (*models.TransactionView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionView), args.Error(1)
}

type testServer struct {
	handler  http.Handler
	accounts *MockAccountService
	ledger   *MockLedgerService
	queries  *MockTransactionQueries
}

func newTestServer(t *testing.T) *testServer {
	ts := &testServer{
		accounts: &MockAccountService{},
		ledger:   &MockLedgerService{},
		queries:  &MockTransactionQueries{},
	}
	ts.handler = NewRouter(RouterConfig{
		Accounts: ts.accounts,
		Ledger:   ts.ledger,
		Queries:  ts.queries,
		Log:      zerolog.Nop(),
	})
	t.Cleanup(func() {
		ts.accounts.AssertExpectations(t)
		ts.ledger.AssertExpectations(t)
		ts.queries.AssertExpectations(t)
	})
	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}
