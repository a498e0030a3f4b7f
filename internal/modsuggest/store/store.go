package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. Sub-repositories are exposed as methods so a Tx can hand
// out the same repos bound to the transaction, and nobody accidentally opens
// a transaction within a transaction.
type Store interface {
	Accounts() Accounts
	Suggestions() Suggestions
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByUsername is an exact, case-sensitive match.
	GetAccountByUsername(ctx context.Context, username string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the username is taken.
	CreateAccount(ctx context.Context, a domain.Account) error

	// ListAccounts returns every account ordered by id, newest first.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	UpdatePasswordHash(ctx context.Context, accountID string, newHash string) error
	SetAdmin(ctx context.Context, accountID string, isAdmin bool) error

	// DeleteAccount removes the account row. Sessions cascade per schema;
	// suggestions must be removed first by the caller.
	DeleteAccount(ctx context.Context, accountID string) error

	// IsEmpty returns true if there are no accounts.
	IsEmpty(ctx context.Context) (bool, error)
}

type Suggestions interface {
	GetSuggestionByID(ctx context.Context, id string) (domain.Suggestion, error)

	CreateSuggestion(ctx context.Context, s domain.Suggestion) error

	// ListSuggestions joins each suggestion with its author's username,
	// ordered by submitted_at descending.
	ListSuggestions(ctx context.Context) ([]domain.SuggestionView, error)

	// UpdateStatus sets status and rejection_reason together. An empty
	// reason is stored as NULL.
	UpdateStatus(ctx context.Context, id string, status domain.Status, reason string) error

	DeleteSuggestion(ctx context.Context, id string) error

	// DeleteSuggestionsByAuthor removes every suggestion owned by an account
	// and reports how many rows went.
	DeleteSuggestionsByAuthor(ctx context.Context, authorID string) (int64, error)
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error
	GetSessionByID(ctx context.Context, id string) (domain.Session, error)

	// DeleteSession is a no-op when the session does not exist.
	DeleteSession(ctx context.Context, id string) error

	// DeleteExpiredSessions is housekeeping, run opportunistically on login.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
