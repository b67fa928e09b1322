package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ttnppedr/banking-system/internal/database"
	"github.com/ttnppedr/banking-system/internal/events"
	"github.com/ttnppedr/banking-system/internal/metrics"
	"github.com/ttnppedr/banking-system/internal/models"
)

// LedgerService applies balance-mutating operations. Every operation runs in
// exactly one unit of work: the balance changes and transaction rows it
// writes are committed together or rolled back together.
type LedgerService struct {
	store   *database.Store
	events  EventPublisher
	metrics OperationRecorder
}

func NewLedgerService(store *database.Store, publisher EventPublisher, recorder OperationRecorder) *LedgerService {
	return &LedgerService{
		store:   store,
		events:  publisher,
		metrics: recorder,
	}
}

// Apply dispatches cmd to the matching operation and returns the resulting
// transaction with its accounts resolved.
func (s *LedgerService) Apply(ctx context.Context, cmd models.LedgerCommand) (*models.TransactionView, error) {
	if !cmd.Type.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTransactionType, int16(cmd.Type))
	}

	var (
		id  int64
		err error
	)
	switch cmd.Type {
	case models.TransactionDeposit:
		id, err = s.Deposit(ctx, cmd.UserID, cmd.Amount)
	case models.TransactionWithdraw:
		id, err = s.Withdraw(ctx, cmd.UserID, cmd.Amount)
	case models.TransactionTransfer:
		id, err = s.Transfer(ctx, cmd.UserID, cmd.ToID, cmd.Amount)
	}
	if err != nil {
		return nil, err
	}

	view, err := s.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, fmt.Errorf("transaction %d not readable after commit", id)
	}
	return view, nil
}

func (s *LedgerService) Deposit(ctx context.Context, userID, amount int64) (int64, error) {
	if amount < 1 {
		return 0, s.finish(ctx, models.TransactionDeposit, ErrInvalidAmount)
	}

	txn := &models.Transaction{Type: models.TransactionDeposit, Amount: amount, UserID: userID}
	err := s.store.WithTx(ctx, func(tx *database.Tx) error {
		if _, err := tx.AdjustBalance(ctx, userID, amount); err != nil {
			return accountMissing(err)
		}
		return tx.InsertTransaction(ctx, txn)
	})
	if err != nil {
		return 0, s.finish(ctx, models.TransactionDeposit, err)
	}
	return txn.ID, s.finish(ctx, models.TransactionDeposit, nil, txn)
}

// Withdraw decrements first and inspects the resulting balance; a negative
// result aborts the unit of work so the decrement is rolled back.
func (s *LedgerService) Withdraw(ctx context.Context, userID, amount int64) (int64, error) {
	if amount < 1 {
		return 0, s.finish(ctx, models.TransactionWithdraw, ErrInvalidAmount)
	}

	txn := &models.Transaction{Type: models.TransactionWithdraw, Amount: amount, UserID: userID}
	err := s.store.WithTx(ctx, func(tx *database.Tx) error {
		balance, err := tx.AdjustBalance(ctx, userID, -amount)
		if err != nil {
			return accountMissing(err)
		}
		if balance < 0 {
			return ErrInsufficientBalance
		}
		return tx.InsertTransaction(ctx, txn)
	})
	if err != nil {
		return 0, s.finish(ctx, models.TransactionWithdraw, err)
	}
	return txn.ID, s.finish(ctx, models.TransactionWithdraw, nil, txn)
}

// Transfer moves amount from userID to toID and files one row under each
// party. The receiver's row is inserted first; the id of the sender's row is
// returned.
func (s *LedgerService) Transfer(ctx context.Context, userID, toID, amount int64) (int64, error) {
	if amount < 1 {
		return 0, s.finish(ctx, models.TransactionTransfer, ErrInvalidAmount)
	}
	if userID == toID {
		return 0, s.finish(ctx, models.TransactionTransfer, ErrSameAccount)
	}

	fromID, receiverID := userID, toID
	received := &models.Transaction{
		Type:   models.TransactionTransfer,
		Amount: amount,
		UserID: toID,
		FromID: &fromID,
		ToID:   &receiverID,
	}
	sent := &models.Transaction{
		Type:   models.TransactionTransfer,
		Amount: amount,
		UserID: userID,
		FromID: &fromID,
		ToID:   &receiverID,
	}

	err := s.store.WithTx(ctx, func(tx *database.Tx) error {
		locked, err := tx.LockAccounts(ctx, userID, toID)
		if err != nil {
			return err
		}
		if locked[userID] == nil || locked[toID] == nil {
			return ErrAccountNotFound
		}

		balance, err := tx.AdjustBalance(ctx, userID, -amount)
		if err != nil {
			return accountMissing(err)
		}
		if balance < 0 {
			return ErrInsufficientBalance
		}

		if _, err := tx.AdjustBalance(ctx, toID, amount); err != nil {
			return accountMissing(err)
		}

		if err := tx.InsertTransaction(ctx, received); err != nil {
			return err
		}
		return tx.InsertTransaction(ctx, sent)
	})
	if err != nil {
		return 0, s.finish(ctx, models.TransactionTransfer, err)
	}
	return sent.ID, s.finish(ctx, models.TransactionTransfer, nil, received, sent)
}

// GetTransactionByID returns nil, nil when the transaction does not exist.
func (s *LedgerService) GetTransactionByID(ctx context.Context, id int64) (*models.TransactionView, error) {
	return s.store.TransactionByID(ctx, id)
}

// finish records the outcome of an operation and, once committed, publishes
// one event per written row. It returns err unchanged.
func (s *LedgerService) finish(ctx context.Context, kind models.TransactionType, err error, rows ...*models.Transaction) error {
	if s.metrics != nil {
		s.metrics.RecordOperation(kind.String(), outcome(err))
	}
	if err != nil {
		return err
	}

	for _, row := range rows {
		publish(ctx, s.events, events.TransactionCreated, events.TransactionCreatedEvent{
			TransactionID: row.ID,
			Type:          row.Type.String(),
			Amount:        row.Amount,
			UserID:        row.UserID,
			FromID:        row.FromID,
			ToID:          row.ToID,
		})
	}
	return nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrInsufficientBalance):
		return metrics.OutcomeInsufficientBalance
	case errors.Is(err, ErrAccountNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrSameAccount), errors.Is(err, ErrInvalidAmount):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}

func accountMissing(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAccountNotFound
	}
	return err
}
