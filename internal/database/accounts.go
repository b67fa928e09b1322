package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ttnppedr/banking-system/internal/models"
)

const accountColumns = `id, name, balance, created_at, updated_at`

func scanAccount(row rowScanner) (*models.Account, error) {
	var a models.Account
	if err := row.Scan(&a.ID, &a.Name, &a.Balance, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// InsertAccount creates an account. A taken name yields ErrUniqueViolation.
func (s *Store) InsertAccount(ctx context.Context, name string, balance int64) (*models.Account, error) {
	account, err := scanAccount(s.db.QueryRowContext(ctx, `
		INSERT INTO users (name, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		RETURNING `+accountColumns,
		name, balance, s.now()))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUniqueViolation
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return account, nil
}

func (s *Store) AccountByID(ctx context.Context, id int64) (*models.Account, error) {
	return s.accountBy(ctx, "id = $1", id)
}

func (s *Store) AccountByName(ctx context.Context, name string) (*models.Account, error) {
	return s.accountBy(ctx, "name = $1", name)
}

func (s *Store) accountBy(ctx context.Context, predicate string, arg any) (*models.Account, error) {
	account, err := scanAccount(s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM users WHERE `+predicate, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

// AccountNameTaken reports whether an account other than excludeID holds
// name. Pass 0 to check against every account.
func (s *Store) AccountNameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	var taken bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE name = $1 AND id <> $2)`,
		name, excludeID).Scan(&taken)
	if err != nil {
		return false, fmt.Errorf("check account name: %w", err)
	}
	return taken, nil
}

// RenameAccount sets a new name and returns the updated account, or nil when
// the account does not exist.
func (s *Store) RenameAccount(ctx context.Context, id int64, name string) (*models.Account, error) {
	account, err := scanAccount(s.db.QueryRowContext(ctx, `
		UPDATE users
		SET name = $1, updated_at = $2
		WHERE id = $3
		RETURNING `+accountColumns,
		name, s.now(), id))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case isUniqueViolation(err):
		return nil, ErrUniqueViolation
	case err != nil:
		return nil, fmt.Errorf("rename account %d: %w", id, err)
	}
	return account, nil
}

func accountWhere(filter models.AccountFilter) *where {
	w := &where{}
	if filter.Name != "" {
		w.add("name = $%d", filter.Name)
	}
	if filter.NamePrefix != "" {
		w.add(`name LIKE $%d ESCAPE '\'`, escapeLike(filter.NamePrefix)+"%")
	}
	return w
}

// ListAccounts returns one page of accounts in insertion order.
func (s *Store) ListAccounts(ctx context.Context, filter models.AccountFilter, p models.Pagination) ([]models.Account, error) {
	w := accountWhere(filter)
	limit, args := w.page(p)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM users`+w.String()+` ORDER BY id`+limit, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0, p.Limit())
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

func (s *Store) CountAccounts(ctx context.Context, filter models.AccountFilter) (int64, error) {
	w := accountWhere(filter)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+w.String(), w.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
