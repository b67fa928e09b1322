package services

import (
	"context"

	"github.com/ttnppedr/banking-system/internal/database"
	"github.com/ttnppedr/banking-system/internal/models"
)

// TransactionQueryService is the read side of the ledger.
type TransactionQueryService struct {
	store *database.Store
}

func NewTransactionQueryService(store *database.Store) *TransactionQueryService {
	return &TransactionQueryService{store: store}
}

// ListTransactions returns one page of the rows filed under filter.UserID
// whose createdAt falls within the optional inclusive bounds.
func (s *TransactionQueryService) ListTransactions(ctx context.Context, filter models.TransactionFilter, page models.Pagination) ([]models.TransactionView, error) {
	return s.store.ListTransactions(ctx, filter, page)
}

func (s *TransactionQueryService) CountTransactions(ctx context.Context, filter models.TransactionFilter) (int64, error) {
	return s.store.CountTransactions(ctx, filter)
}

func (s *TransactionQueryService) GetTransaction(ctx context.Context, id int64) (*models.TransactionView, error) {
	return s.store.TransactionByID(ctx, id)
}
