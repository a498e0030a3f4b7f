package sqlite

import (
	"context"
	"database/sql"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so the same queries run
// inside and outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db dbtx
}

const (
	accountColumns = `id, username, password_hash, is_admin, created_at`

	getAccountByID       = `SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`
	getAccountByUsername = `SELECT ` + accountColumns + ` FROM accounts WHERE username = ?`
	createAccount        = `INSERT INTO accounts (id, username, password_hash, is_admin, created_at) VALUES (?, ?, ?, ?, ?)`
	listAccounts         = `SELECT ` + accountColumns + ` FROM accounts ORDER BY id DESC`
	updatePasswordHash   = `UPDATE accounts SET password_hash = ? WHERE id = ?`
	setAdmin             = `UPDATE accounts SET is_admin = ? WHERE id = ?`
	deleteAccount        = `DELETE FROM accounts WHERE id = ?`
	countAccounts        = `SELECT COUNT(*) FROM accounts`
)

const (
	suggestionColumns = `s.id, s.mod_name, s.mod_url, s.source, s.description, s.status,
		s.rejection_reason, s.submitted_at, s.author_id`

	getSuggestionByID = `SELECT ` + suggestionColumns + ` FROM suggestions s WHERE s.id = ?`
	createSuggestion  = `INSERT INTO suggestions
		(id, mod_name, mod_url, source, description, status, rejection_reason, submitted_at, author_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	listSuggestions = `SELECT ` + suggestionColumns + `, a.username
		FROM suggestions s
		JOIN accounts a ON a.id = s.author_id
		ORDER BY s.submitted_at DESC, s.id DESC`
	updateSuggestionStatus    = `UPDATE suggestions SET status = ?, rejection_reason = ? WHERE id = ?`
	deleteSuggestion          = `DELETE FROM suggestions WHERE id = ?`
	deleteSuggestionsByAuthor = `DELETE FROM suggestions WHERE author_id = ?`
)

const (
	createSession         = `INSERT INTO sessions (id, account_id, expires_at, created_at) VALUES (?, ?, ?, ?)`
	getSessionByID        = `SELECT id, account_id, expires_at, created_at FROM sessions WHERE id = ?`
	deleteSession         = `DELETE FROM sessions WHERE id = ?`
	deleteExpiredSessions = `DELETE FROM sessions WHERE expires_at <= ?`
)
