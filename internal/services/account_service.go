package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ttnppedr/banking-system/internal/database"
	"github.com/ttnppedr/banking-system/internal/events"
	"github.com/ttnppedr/banking-system/internal/models"
)

type AccountService struct {
	store  *database.Store
	events EventPublisher
}

func NewAccountService(store *database.Store, publisher EventPublisher) *AccountService {
	return &AccountService{store: store, events: publisher}
}

// CreateAccount opens an account with the given starting balance. Names are
// unique; a collision found by the pre-check or by the unique index is
// reported as ErrDuplicateName.
func (s *AccountService) CreateAccount(ctx context.Context, name string, initialBalance int64) (*models.Account, error) {
	if initialBalance < 0 {
		return nil, ErrNegativeBalance
	}

	taken, err := s.store.AccountNameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	account, err := s.store.InsertAccount(ctx, name, initialBalance)
	if errors.Is(err, database.ErrUniqueViolation) {
		return nil, ErrDuplicateName
	}
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	publish(ctx, s.events, events.UserCreated, events.UserCreatedEvent{
		UserID:  account.ID,
		Name:    account.Name,
		Balance: account.Balance,
	})
	return account, nil
}

// GetAccountByID returns nil, nil when the account does not exist.
func (s *AccountService) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	return s.store.AccountByID(ctx, id)
}

func (s *AccountService) GetAccountByName(ctx context.Context, name string) (*models.Account, error) {
	return s.store.AccountByName(ctx, name)
}

func (s *AccountService) ListAccounts(ctx context.Context, filter models.AccountFilter, page models.Pagination) ([]models.Account, error) {
	return s.store.ListAccounts(ctx, filter, page)
}

func (s *AccountService) CountAccounts(ctx context.Context, filter models.AccountFilter) (int64, error) {
	return s.store.CountAccounts(ctx, filter)
}

// RenameAccount changes an account's name. The account's own current name
// never counts as taken, so renaming to it succeeds and only bumps updatedAt.
func (s *AccountService) RenameAccount(ctx context.Context, id int64, newName string) (*models.Account, error) {
	current, err := s.store.AccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrAccountNotFound
	}

	taken, err := s.store.AccountNameTaken(ctx, newName, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	renamed, err := s.store.RenameAccount(ctx, id, newName)
	switch {
	case errors.Is(err, database.ErrUniqueViolation):
		return nil, ErrDuplicateName
	case err != nil:
		return nil, err
	case renamed == nil:
		return nil, ErrAccountNotFound
	}

	if current.Name != renamed.Name {
		publish(ctx, s.events, events.UserRenamed, events.UserRenamedEvent{
			UserID:  renamed.ID,
			OldName: current.Name,
			Name:    renamed.Name,
		})
	}
	return renamed, nil
}
