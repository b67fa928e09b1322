package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ttnppedr/banking-system/internal/events"
	"github.com/ttnppedr/banking-system/internal/models"
)

const (
	nameTakenQuery = "SELECT EXISTS \\(SELECT 1 FROM users WHERE name = \\$1 AND id <> \\$2\\)"
	byIDQuery      = "SELECT id, name, balance, created_at, updated_at FROM users WHERE id = \\$1"
	renameQuery    = "UPDATE users SET name = \\$1, updated_at = \\$2 WHERE id = \\$3"
)

func newAccounts(t *testing.T) (*AccountService, sqlmock.Sqlmock, *MockPublisher) {
	store, dbMock := newMockStore(t)
	publisher := &MockPublisher{}
	return NewAccountService(store, publisher), dbMock, publisher
}

func takenRows(taken bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"exists"}).AddRow(taken)
}

func TestAccountService_CreateAccount(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("created", func(t *testing.T) {
		accounts, dbMock, publisher := newAccounts(t)

		dbMock.ExpectQuery(nameTakenQuery).WithArgs("alice", 0).WillReturnRows(takenRows(false))
		dbMock.ExpectQuery("INSERT INTO users").
			WithArgs("alice", 100, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(accountCols).AddRow(1, "alice", 100, now, now))
		publisher.On("Publish", mock.Anything, events.UserCreated, events.UserCreatedEvent{
			UserID: 1, Name: "alice", Balance: 100,
		}).Return(nil).Once()

		account, err := accounts.CreateAccount(ctx, "alice", 100)
		require.NoError(t, err)
		assert.Equal(t, int64(100), account.Balance)
		assert.NoError(t, dbMock.ExpectationsWereMet())
		publisher.AssertExpectations(t)
	})

	t.Run("duplicate found by pre-check", func(t *testing.T) {
		accounts, dbMock, publisher := newAccounts(t)
		dbMock.ExpectQuery(nameTakenQuery).WithArgs("alice", 0).WillReturnRows(takenRows(true))

		_, err := accounts.CreateAccount(ctx, "alice", 0)
		assert.ErrorIs(t, err, ErrDuplicateName)
		assert.NoError(t, dbMock.ExpectationsWereMet())
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate raced past the pre-check", func(t *testing.T) {
		accounts, dbMock, _ := newAccounts(t)
		dbMock.ExpectQuery(nameTakenQuery).WillReturnRows(takenRows(false))
		dbMock.ExpectQuery("INSERT INTO users").WillReturnError(&pq.Error{Code: "23505"})

		_, err := accounts.CreateAccount(ctx, "alice", 0)
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("negative balance", func(t *testing.T) {
		accounts, dbMock, _ := newAccounts(t)

		_, err := accounts.CreateAccount(ctx, "alice", -1)
		assert.ErrorIs(t, err, ErrNegativeBalance)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestAccountService_RenameAccount(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("own current name is not a duplicate", func(t *testing.T) {
		accounts, dbMock, publisher := newAccounts(t)

		dbMock.ExpectQuery(byIDQuery).WithArgs(1).
			WillReturnRows(sqlmock.NewRows(accountCols).AddRow(1, "alice", 10, now, now))
		dbMock.ExpectQuery(nameTakenQuery).WithArgs("alice", 1).WillReturnRows(takenRows(false))
		dbMock.ExpectQuery(renameQuery).WithArgs("alice", sqlmock.AnyArg(), 1).
			WillReturnRows(sqlmock.NewRows(accountCols).AddRow(1, "alice", 10, now, now.Add(time.Second)))

		account, err := accounts.RenameAccount(ctx, 1, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", account.Name)
		assert.True(t, account.UpdatedAt.After(account.CreatedAt))
		assert.NoError(t, dbMock.ExpectationsWereMet())
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("another account's name is a duplicate", func(t *testing.T) {
		accounts, dbMock, _ := newAccounts(t)

		dbMock.ExpectQuery(byIDQuery).WithArgs(1).
			WillReturnRows(sqlmock.NewRows(accountCols).AddRow(1, "alice", 10, now, now))
		dbMock.ExpectQuery(nameTakenQuery).WithArgs("bob", 1).WillReturnRows(takenRows(true))

		_, err := accounts.RenameAccount(ctx, 1, "bob")
		assert.ErrorIs(t, err, ErrDuplicateName)
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("renamed", func(t *testing.T) {
		accounts, dbMock, publisher := newAccounts(t)

		dbMock.ExpectQuery(byIDQuery).WithArgs(1).
			WillReturnRows(sqlmock.NewRows(accountCols).AddRow(1, "alice", 10, now, now))
		dbMock.ExpectQuery(nameTakenQuery).WithArgs("carol", 1).WillReturnRows(takenRows(false))
		dbMock.ExpectQuery(renameQuery).WithArgs("carol", sqlmock.AnyArg(), 1).
			WillReturnRows(sqlmock.NewRows(accountCols).AddRow(1, "carol", 10, now, now))
		publisher.On("Publish", mock.Anything, events.UserRenamed, events.UserRenamedEvent{
			UserID: 1, OldName: "alice", Name: "carol",
		}).Return(nil).Once()

		account, err := accounts.RenameAccount(ctx, 1, "carol")
		require.NoError(t, err)
		assert.Equal(t, "carol", account.Name)
		publisher.AssertExpectations(t)
	})

	t.Run("missing account", func(t *testing.T) {
		accounts, dbMock, _ := newAccounts(t)
		dbMock.ExpectQuery(byIDQuery).WithArgs(9).WillReturnRows(sqlmock.NewRows(accountCols))

		_, err := accounts.RenameAccount(ctx, 9, "carol")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestAccountService_ListAccounts(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	accounts, dbMock, _ := newAccounts(t)

	dbMock.ExpectQuery("FROM users ORDER BY id LIMIT \\$1 OFFSET \\$2").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(accountCols).
			AddRow(1, "alice", 0, now, now).
			AddRow(2, "bob", 5, now, now))
	dbMock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	list, err := accounts.ListAccounts(ctx, models.AccountFilter{}, models.NewPagination(0, 0))
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "alice", list[0].Name)

	total, err := accounts.CountAccounts(ctx, models.AccountFilter{})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestAccountService_Lookups(t *testing.T) {
	ctx := context.Background()
	accounts, dbMock, _ := newAccounts(t)

	dbMock.ExpectQuery(byIDQuery).WithArgs(3).WillReturnRows(sqlmock.NewRows(accountCols))
	account, err := accounts.GetAccountByID(ctx, 3)
	assert.NoError(t, err)
	assert.Nil(t, account)

	now := time.Now()
	dbMock.ExpectQuery("FROM users WHERE name = \\$1").WithArgs("bob").
		WillReturnRows(sqlmock.NewRows(accountCols).AddRow(2, "bob", 5, now, now))
	account, err = accounts.GetAccountByName(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(2), account.ID)
}
