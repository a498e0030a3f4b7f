package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/domain"
	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/store"
	"github.com/aussiebroadwan/modsuggest/pkg/cryptox"
	"github.com/aussiebroadwan/modsuggest/pkg/idx"
	"github.com/aussiebroadwan/modsuggest/pkg/jwtx"
	"github.com/aussiebroadwan/modsuggest/pkg/slogx"
)

const (
	msgBadCredentials  = "Invalid username or password"
	msgUsernameTaken   = "Username already exists"
	msgNotLoggedIn     = "Login required"
	msgAdminRequired   = "Admin privileges required"
	msgCredentialsReqd = "Username and password are required"
)

// IdentityService maps credentials and session tokens to accounts.
type IdentityService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Verifier jwtx.Verifier

	Issuer     string
	SessionTTL time.Duration

	// Now is overridable in tests.
	Now func() time.Time
}

// LoginResult is what a successful login hands back to the transport.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Account   domain.Account
}

func (s *IdentityService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *IdentityService) ttl() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return jwtx.DefaultSessionTTL
}

// Login checks the credentials and opens a new session. Every failure
// returns the same AuthenticationFailure so callers cannot probe for
// existing usernames. The username is trimmed the same way Register
// trims it.
func (s *IdentityService) Login(ctx context.Context, username, secret string) (LoginResult, error) {
	l := slogx.FromContext(ctx)
	username = strings.TrimSpace(username)

	acct, err := s.Store.Accounts().GetAccountByUsername(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		cryptox.VerifyDummy(secret)
		return LoginResult{}, newError(KindAuthentication, msgBadCredentials)
	case err != nil:
		return LoginResult{}, serverError("Failed to look up account", err)
	}

	if err := cryptox.VerifyPassword(secret, acct.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("password verification failed", slog.String("account_id", acct.ID), slog.Any("error", err))
		}
		return LoginResult{}, newError(KindAuthentication, msgBadCredentials)
	}

	now := s.now()
	sess := domain.Session{
		ID:        idx.NewAt(now).String(),
		AccountID: acct.ID,
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	}

	token, err := s.Signer.Sign(jwtx.NewSessionClaims(acct.ID, sess.ID, s.Issuer, s.ttl(), now))
	if err != nil {
		return LoginResult{}, serverError("Failed to sign session", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		purged, err := tx.Sessions().DeleteExpiredSessions(ctx, now)
		if err != nil {
			return err
		}
		if purged > 0 {
			l.Debug("purged expired sessions", slog.Int64("count", purged))
		}
		return tx.Sessions().CreateSession(ctx, sess)
	})
	if err != nil {
		return LoginResult{}, serverError("Failed to create session", err)
	}

	l.Info("login", slog.String("account_id", acct.ID), slog.String("session_id", sess.ID))
	return LoginResult{Token: token, ExpiresAt: sess.ExpiresAt, Account: acct}, nil
}

// Register creates a non-admin account.
func (s *IdentityService) Register(ctx context.Context, username, secret string) (domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || secret == "" {
		return domain.Account{}, newError(KindValidation, msgCredentialsReqd)
	}

	if _, err := s.Store.Accounts().GetAccountByUsername(ctx, username); err == nil {
		return domain.Account{}, newError(KindConflict, msgUsernameTaken)
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, serverError("Failed to look up account", err)
	}

	hash, err := cryptox.HashPassword(secret)
	if err != nil {
		return domain.Account{}, serverError("Failed to hash password", err)
	}

	now := s.now()
	acct := domain.Account{
		ID:           idx.NewAt(now).String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Accounts().CreateAccount(ctx, acct)
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		// lost a race with a concurrent registration
		return domain.Account{}, newError(KindConflict, msgUsernameTaken)
	case err != nil:
		return domain.Account{}, serverError("Failed to create account", err)
	}

	slogx.FromContext(ctx).Info("account registered", slog.String("account_id", acct.ID))
	return acct, nil
}

// Logout revokes the session behind token. Invalid, expired and already
// revoked tokens are accepted silently.
func (s *IdentityService) Logout(ctx context.Context, token string) error {
	claims, err := s.Verifier.Verify(token)
	if err != nil || claims.SID == "" {
		return nil
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Sessions().DeleteSession(ctx, claims.SID)
	})
	if err != nil {
		return serverError("Failed to end session", err)
	}
	return nil
}

// RequireAuth resolves a session token to its account.
func (s *IdentityService) RequireAuth(ctx context.Context, token string) (domain.Account, error) {
	unauth := newError(KindUnauthenticated, msgNotLoggedIn)
	if strings.TrimSpace(token) == "" {
		return domain.Account{}, unauth
	}

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		slogx.FromContext(ctx).Debug("session token rejected", slog.Any("error", err))
		return domain.Account{}, unauth
	}

	now := s.now()
	if err := claims.ValidateExpiry(now); err != nil {
		return domain.Account{}, unauth
	}

	sess, err := s.Store.Sessions().GetSessionByID(ctx, claims.SID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.Account{}, unauth
	case err != nil:
		return domain.Account{}, serverError("Failed to load session", err)
	}
	if sess.AccountID != claims.Subject || sess.Expired(now) {
		return domain.Account{}, unauth
	}

	acct, err := s.Store.Accounts().GetAccountByID(ctx, sess.AccountID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.Account{}, unauth
	case err != nil:
		return domain.Account{}, serverError("Failed to load account", err)
	}

	return acct, nil
}

// RequireAdmin is the second gate for privileged operations.
func RequireAdmin(acct domain.Account) error {
	if !acct.IsAdmin {
		return newError(KindForbidden, msgAdminRequired)
	}
	return nil
}
