package handlers

import (
	"context"

	"github.com/ttnppedr/banking-system/internal/models"
)

// AccountService is the subset of services.AccountService the API uses.
type AccountService interface {
	CreateAccount(ctx context.Context, name string, initialBalance int64) (*models.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*models.Account, error)
	ListAccounts(ctx context.Context, filter models.AccountFilter, page models.Pagination) ([]models.Account, error)
	CountAccounts(ctx context.Context, filter models.AccountFilter) (int64, error)
	RenameAccount(ctx context.Context, id int64, newName string) (*models.Account, error)
}

type LedgerService interface {
	Apply(ctx context.Context, cmd models.LedgerCommand) (*models.TransactionView, error)
}

type TransactionQueries interface {
	ListTransactions(ctx context.Context, filter models.TransactionFilter, page models.Pagination) ([]models.TransactionView, error)
	CountTransactions(ctx context.Context, filter models.TransactionFilter) (int64, error)
	GetTransaction(ctx context.Context, id int64) (*models.TransactionView, error)
}
