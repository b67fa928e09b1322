package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ttnppedr/banking-system/internal/models"
)

const transactionViewQuery = `
	SELECT t.id, t.type, t.amount, t.user_id, t.from_id, t.to_id, t.created_at, t.updated_at,
		u.id, u.name, u.balance, u.created_at, u.updated_at,
		f.id, f.name, f.balance, f.created_at, f.updated_at,
		r.id, r.name, r.balance, r.created_at, r.updated_at
	FROM transactions t
	LEFT JOIN users u ON u.id = t.user_id
	LEFT JOIN users f ON f.id = t.from_id
	LEFT JOIN users r ON r.id = t.to_id`

// joinedAccount holds the columns of a LEFT JOINed users row.
type joinedAccount struct {
	id        sql.NullInt64
	name      sql.NullString
	balance   sql.NullInt64
	createdAt sql.NullTime
	updatedAt sql.NullTime
}

func (j *joinedAccount) dest() []any {
	return []any{&j.id, &j.name, &j.balance, &j.createdAt, &j.updatedAt}
}

func (j *joinedAccount) account() *models.Account {
	if !j.id.Valid {
		return nil
	}
	return &models.Account{
		ID:        j.id.Int64,
		Name:      j.name.String,
		Balance:   j.balance.Int64,
		CreatedAt: j.createdAt.Time,
		UpdatedAt: j.updatedAt.Time,
	}
}

func scanTransactionView(row rowScanner) (*models.TransactionView, error) {
	var (
		v              models.TransactionView
		kind           int16
		fromID, toID   sql.NullInt64
		user, from, to joinedAccount
	)
	dest := []any{&v.ID, &kind, &v.Amount, &v.UserID, &fromID, &toID, &v.CreatedAt, &v.UpdatedAt}
	dest = append(dest, user.dest()...)
	dest = append(dest, from.dest()...)
	dest = append(dest, to.dest()...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	v.Type = models.TransactionType(kind)
	v.FromID = int64Ptr(fromID)
	v.ToID = int64Ptr(toID)
	v.User = user.account()
	v.From = from.account()
	v.To = to.account()
	return &v, nil
}

// TransactionByID returns the transaction with its user, from and to
// accounts, or nil when it does not exist.
func (s *Store) TransactionByID(ctx context.Context, id int64) (*models.TransactionView, error) {
	view, err := scanTransactionView(s.db.QueryRowContext(ctx, transactionViewQuery+` WHERE t.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return view, nil
}

func transactionWhere(filter models.TransactionFilter) *where {
	w := &where{}
	w.add("t.user_id = $%d", filter.UserID)
	if filter.CreatedFrom != nil {
		w.add("t.created_at >= $%d", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		w.add("t.created_at <= $%d", *filter.CreatedTo)
	}
	return w
}

// ListTransactions returns one page of the transactions filed under
// filter.UserID in creation order.
func (s *Store) ListTransactions(ctx context.Context, filter models.TransactionFilter, p models.Pagination) ([]models.TransactionView, error) {
	w := transactionWhere(filter)
	limit, args := w.page(p)

	rows, err := s.db.QueryContext(ctx, transactionViewQuery+w.String()+` ORDER BY t.id`+limit, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	views := make([]models.TransactionView, 0, p.Limit())
	for rows.Next() {
		v, err := scanTransactionView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		views = append(views, *v)
	}
	return views, rows.Err()
}

func (s *Store) CountTransactions(ctx context.Context, filter models.TransactionFilter) (int64, error) {
	w := transactionWhere(filter)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions t`+w.String(), w.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return total, nil
}
