package sqlite

import (
	"context"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/domain"
)

type accountsRepo struct {
	q *queries
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		a         domain.Account
		createdAt string
	)
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.IsAdmin, &createdAt); err != nil {
		return domain.Account{}, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return domain.Account{}, err
	}
	a.CreatedAt = t
	return a, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	a, err := scanAccount(r.q.db.QueryRowContext(ctx, getAccountByID, id))
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByUsername(ctx context.Context, username string) (domain.Account, error) {
	a, err := scanAccount(r.q.db.QueryRowContext(ctx, getAccountByUsername, username))
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.q.db.ExecContext(ctx, createAccount,
		a.ID,
		a.Username,
		a.PasswordHash,
		a.IsAdmin,
		formatTime(a.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.q.db.QueryContext(ctx, listAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *accountsRepo) UpdatePasswordHash(ctx context.Context, accountID string, newHash string) error {
	return mapAffected(r.q.db.ExecContext(ctx, updatePasswordHash, newHash, accountID))
}

func (r *accountsRepo) SetAdmin(ctx context.Context, accountID string, isAdmin bool) error {
	return mapAffected(r.q.db.ExecContext(ctx, setAdmin, isAdmin, accountID))
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, accountID string) error {
	return mapAffected(r.q.db.ExecContext(ctx, deleteAccount, accountID))
}

func (r *accountsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.q.db.QueryRowContext(ctx, countAccounts).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
