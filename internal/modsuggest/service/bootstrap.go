package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/domain"
	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/store"
	"github.com/aussiebroadwan/modsuggest/pkg/cryptox"
	"github.com/aussiebroadwan/modsuggest/pkg/idx"
	"github.com/aussiebroadwan/modsuggest/pkg/slogx"
)

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

// BootstrapService seeds the first admin account on an empty database.
type BootstrapService struct {
	Store store.Store

	// Empty values fall back to DefaultAdminUsername/DefaultAdminPassword.
	Username string
	Password string
}

// EnsureDefaultAdmin creates the seed admin when no account exists yet and
// reports whether it did. The seed credentials are well known, so every
// deployment must change them after first start.
func (s *BootstrapService) EnsureDefaultAdmin(ctx context.Context) (bool, error) {
	l := slogx.FromContext(ctx)

	username, password := s.Username, s.Password
	if username == "" {
		username = DefaultAdminUsername
	}
	if password == "" {
		password = DefaultAdminPassword
	}

	empty, err := s.Store.Accounts().IsEmpty(ctx)
	if err != nil {
		return false, serverError("Failed to inspect accounts", err)
	}
	if !empty {
		return false, nil
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return false, serverError("Failed to hash seed password", err)
	}

	now := time.Now().UTC()
	admin := domain.Account{
		ID:           idx.NewAt(now).String(),
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    now,
	}

	created := false
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// re-check inside the transaction in case two processes start together
		empty, err := tx.Accounts().IsEmpty(ctx)
		if err != nil || !empty {
			return err
		}
		if err := tx.Accounts().CreateAccount(ctx, admin); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, serverError("Failed to create seed admin", err)
	}
	if !created {
		return false, nil
	}

	l.Warn("created default admin account; change its password before exposing this service",
		slog.String("username", username),
		slog.String("account_id", admin.ID),
		slog.Bool("default_password", password == DefaultAdminPassword),
	)
	return true, nil
}
