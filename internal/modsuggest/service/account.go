package service

import (
	"context"
	"errors"
	"log/slog"
	"unicode/utf8"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/domain"
	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/store"
	"github.com/aussiebroadwan/modsuggest/pkg/cryptox"
	"github.com/aussiebroadwan/modsuggest/pkg/idx"
	"github.com/aussiebroadwan/modsuggest/pkg/slogx"
)

// MinPasswordLength applies to admin password resets only.
const MinPasswordLength = 3

const (
	msgAccountNotFound  = "User not found"
	msgCannotDeleteSelf = "You cannot delete your own account"
	msgCannotToggleSelf = "You cannot change your own admin status"
	msgPasswordTooShort = "Password must be at least 3 characters"
)

// AccountService is the admin-only account administration surface.
type AccountService struct {
	Store store.Store
}

// List returns every account, newest first.
func (s *AccountService) List(ctx context.Context, actor domain.Account) ([]domain.Account, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	accts, err := s.Store.Accounts().ListAccounts(ctx)
	if err != nil {
		return nil, serverError("Failed to list users", err)
	}
	return accts, nil
}

// Delete removes the target account and every suggestion it authored in one
// transaction. Sessions go with the account.
func (s *AccountService) Delete(ctx context.Context, actor domain.Account, targetID string) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	if targetID == actor.ID {
		return newError(KindSelfAction, msgCannotDeleteSelf)
	}

	var removed int64
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		target, err := getAccount(ctx, tx, targetID)
		if err != nil {
			return err
		}
		if removed, err = tx.Suggestions().DeleteSuggestionsByAuthor(ctx, target.ID); err != nil {
			return err
		}
		return tx.Accounts().DeleteAccount(ctx, target.ID)
	})
	if err != nil {
		return wrapStoreError(err, "Failed to delete user")
	}

	slogx.FromContext(ctx).Info("account deleted",
		slog.String("target_account_id", targetID),
		slog.Int64("suggestions_removed", removed),
		slog.String("admin_id", actor.ID),
	)
	return nil
}

// ToggleAdmin flips the admin flag on the target and returns the result.
func (s *AccountService) ToggleAdmin(ctx context.Context, actor domain.Account, targetID string) (domain.Account, error) {
	if err := RequireAdmin(actor); err != nil {
		return domain.Account{}, err
	}
	if targetID == actor.ID {
		return domain.Account{}, newError(KindSelfAction, msgCannotToggleSelf)
	}

	var out domain.Account
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		target, err := getAccount(ctx, tx, targetID)
		if err != nil {
			return err
		}
		target.IsAdmin = !target.IsAdmin
		if err := tx.Accounts().SetAdmin(ctx, target.ID, target.IsAdmin); err != nil {
			return err
		}
		out = target
		return nil
	})
	if err != nil {
		return domain.Account{}, wrapStoreError(err, "Failed to update user")
	}

	slogx.FromContext(ctx).Info("admin flag toggled",
		slog.String("target_account_id", out.ID),
		slog.Bool("is_admin", out.IsAdmin),
		slog.String("admin_id", actor.ID),
	)
	return out, nil
}

// ResetPassword overwrites the target's password hash. Sessions the target
// already holds remain valid.
func (s *AccountService) ResetPassword(ctx context.Context, actor domain.Account, targetID, secret string) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	if utf8.RuneCountInString(secret) < MinPasswordLength {
		return newError(KindValidation, msgPasswordTooShort)
	}

	hash, err := cryptox.HashPassword(secret)
	if err != nil {
		return serverError("Failed to hash password", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		target, err := getAccount(ctx, tx, targetID)
		if err != nil {
			return err
		}
		return tx.Accounts().UpdatePasswordHash(ctx, target.ID, hash)
	})
	if err != nil {
		return wrapStoreError(err, "Failed to reset password")
	}

	slogx.FromContext(ctx).Info("password reset",
		slog.String("target_account_id", targetID),
		slog.String("admin_id", actor.ID),
	)
	return nil
}

func getAccount(ctx context.Context, st store.Store, id string) (domain.Account, error) {
	if _, err := idx.Parse(id); err != nil {
		return domain.Account{}, newError(KindNotFound, msgAccountNotFound)
	}
	acct, err := st.Accounts().GetAccountByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, newError(KindNotFound, msgAccountNotFound)
	}
	return acct, err
}
