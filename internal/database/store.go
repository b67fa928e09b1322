package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lib/pq"
	"github.com/ttnppedr/banking-system/internal/models"
)

// ErrUniqueViolation is returned when an insert or update collides with a
// unique index, in practice users.name.
var ErrUniqueViolation = errors.New("unique constraint violation")

const pgUniqueViolation = "23505"

// Store is the persistence boundary for accounts and transactions.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Tx is a unit of work. Balance changes and transaction rows written through
// it become visible together on commit or not at all.
type Tx struct {
	tx  *sql.Tx
	now func() time.Time
}

// WithTx runs fn inside a single database transaction. The transaction is
// committed only when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&Tx{tx: sqlTx, now: s.now}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// LockAccounts takes row locks on the given accounts in ascending id order so
// concurrent transfers between the same pair cannot deadlock. Ids with no
// matching row are absent from the result.
func (t *Tx) LockAccounts(ctx context.Context, ids ...int64) (map[int64]*models.Account, error) {
	ordered := append([]int64(nil), ids...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	locked := make(map[int64]*models.Account, len(ordered))
	for _, id := range ordered {
		if _, ok := locked[id]; ok {
			continue
		}
		account, err := scanAccount(t.tx.QueryRowContext(ctx, `
			SELECT id, name, balance, created_at, updated_at
			FROM users
			WHERE id = $1
			FOR UPDATE`, id))
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("lock account %d: %w", id, err)
		}
		locked[id] = account
	}
	return locked, nil
}

// AdjustBalance adds delta to the account balance and returns the new
// balance. A missing account yields sql.ErrNoRows.
func (t *Tx) AdjustBalance(ctx context.Context, id, delta int64) (int64, error) {
	var balance int64
	err := t.tx.QueryRowContext(ctx, `
		UPDATE users
		SET balance = balance + $1, updated_at = $2
		WHERE id = $3
		RETURNING balance`,
		delta, t.now(), id).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, sql.ErrNoRows
		}
		return 0, fmt.Errorf("adjust balance of account %d: %w", id, err)
	}
	return balance, nil
}

// InsertTransaction writes txn and fills in its generated id and timestamps.
func (t *Tx) InsertTransaction(ctx context.Context, txn *models.Transaction) error {
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO transactions (type, amount, user_id, from_id, to_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, created_at, updated_at`,
		int16(txn.Type), txn.Amount, txn.UserID, nullInt64(txn.FromID), nullInt64(txn.ToID), t.now(),
	).Scan(&txn.ID, &txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

// where accumulates AND-ed predicates with positional placeholders.
type where struct {
	clauses []string
	args    []any
}

func (w *where) add(format string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(format, len(w.args)))
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	out := " WHERE " + w.clauses[0]
	for _, c := range w.clauses[1:] {
		out += " AND " + c
	}
	return out
}

// page appends LIMIT/OFFSET placeholders after the filter arguments.
func (w *where) page(p models.Pagination) (string, []any) {
	args := append(append([]any(nil), w.args...), p.Limit(), p.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}
