package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/domain"
	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/store"
	"github.com/aussiebroadwan/modsuggest/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func mustCreateAccount(t *testing.T, st store.Store, username string, admin bool) domain.Account {
	t.Helper()

	a := domain.Account{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "hash-" + username,
		IsAdmin:      admin,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, st.Accounts().CreateAccount(context.Background(), a))
	return a
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ApplyMigrations())
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	empty, err := st.Accounts().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	alice := mustCreateAccount(t, st, "alice", false)
	bob := mustCreateAccount(t, st, "bob", true)

	t.Run("lookup by username is case-sensitive", func(t *testing.T) {
		got, err := st.Accounts().GetAccountByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)
		require.False(t, got.IsAdmin)

		_, err = st.Accounts().GetAccountByUsername(ctx, "Alice")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		dup := domain.Account{ID: idx.New().String(), Username: "alice", PasswordHash: "x", CreatedAt: time.Now()}
		err := st.Accounts().CreateAccount(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("list is newest first", func(t *testing.T) {
		accounts, err := st.Accounts().ListAccounts(ctx)
		require.NoError(t, err)
		require.Len(t, accounts, 2)
		require.Equal(t, bob.ID, accounts[0].ID)
		require.Equal(t, alice.ID, accounts[1].ID)
	})

	t.Run("set admin and password", func(t *testing.T) {
		require.NoError(t, st.Accounts().SetAdmin(ctx, alice.ID, true))
		require.NoError(t, st.Accounts().UpdatePasswordHash(ctx, alice.ID, "new-hash"))

		got, err := st.Accounts().GetAccountByID(ctx, alice.ID)
		require.NoError(t, err)
		require.True(t, got.IsAdmin)
		require.Equal(t, "new-hash", got.PasswordHash)
	})

	t.Run("unknown id", func(t *testing.T) {
		require.ErrorIs(t, st.Accounts().SetAdmin(ctx, "missing", true), store.ErrNotFound)
		require.ErrorIs(t, st.Accounts().DeleteAccount(ctx, "missing"), store.ErrNotFound)
	})
}

func TestSuggestions(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	alice := mustCreateAccount(t, st, "alice", false)
	base := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	older := domain.Suggestion{
		ID:          idx.New().String(),
		ModName:     "Sodium",
		ModURL:      "https://modrinth.com/mod/sodium",
		Source:      domain.SourceModrinth,
		Status:      domain.StatusPending,
		SubmittedAt: base,
		AuthorID:    alice.ID,
	}
	newer := domain.Suggestion{
		ID:          idx.New().String(),
		ModName:     "JEI",
		ModURL:      "https://www.curseforge.com/minecraft/mc-mods/jei",
		Source:      domain.SourceCurseForge,
		Description: "recipes",
		Status:      domain.StatusPending,
		SubmittedAt: base.Add(time.Hour),
		AuthorID:    alice.ID,
	}
	require.NoError(t, st.Suggestions().CreateSuggestion(ctx, older))
	require.NoError(t, st.Suggestions().CreateSuggestion(ctx, newer))

	t.Run("list joins author and orders newest first", func(t *testing.T) {
		views, err := st.Suggestions().ListSuggestions(ctx)
		require.NoError(t, err)
		require.Len(t, views, 2)
		require.Equal(t, newer.ID, views[0].ID)
		require.Equal(t, "alice", views[0].AuthorUsername)
		require.Equal(t, "recipes", views[0].Description)
		require.Equal(t, older.ID, views[1].ID)
		require.True(t, base.Equal(views[1].SubmittedAt))
	})

	t.Run("status update stores and clears reason", func(t *testing.T) {
		require.NoError(t, st.Suggestions().UpdateStatus(ctx, older.ID, domain.StatusRejected, "broken"))
		got, err := st.Suggestions().GetSuggestionByID(ctx, older.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusRejected, got.Status)
		require.Equal(t, "broken", got.RejectionReason)

		require.NoError(t, st.Suggestions().UpdateStatus(ctx, older.ID, domain.StatusApproved, ""))
		got, err = st.Suggestions().GetSuggestionByID(ctx, older.ID)
		require.NoError(t, err)
		require.Equal(t, domain.StatusApproved, got.Status)
		require.Empty(t, got.RejectionReason)
	})

	t.Run("author must exist", func(t *testing.T) {
		orphan := newer
		orphan.ID = idx.New().String()
		orphan.AuthorID = "nobody"
		require.Error(t, st.Suggestions().CreateSuggestion(ctx, orphan))
	})

	t.Run("delete by author", func(t *testing.T) {
		n, err := st.Suggestions().DeleteSuggestionsByAuthor(ctx, alice.ID)
		require.NoError(t, err)
		require.EqualValues(t, 2, n)

		_, err = st.Suggestions().GetSuggestionByID(ctx, newer.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
		require.ErrorIs(t, st.Suggestions().DeleteSuggestion(ctx, newer.ID), store.ErrNotFound)
	})
}

func TestSessionsCascadeOnAccountDelete(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	alice := mustCreateAccount(t, st, "alice", false)
	now := time.Now().UTC()

	live := domain.Session{ID: idx.New().String(), AccountID: alice.ID, ExpiresAt: now.Add(time.Hour), CreatedAt: now}
	stale := domain.Session{ID: idx.New().String(), AccountID: alice.ID, ExpiresAt: now.Add(-time.Hour), CreatedAt: now}
	require.NoError(t, st.Sessions().CreateSession(ctx, live))
	require.NoError(t, st.Sessions().CreateSession(ctx, stale))

	n, err := st.Sessions().DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := st.Sessions().GetSessionByID(ctx, live.ID)
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.AccountID)

	require.NoError(t, st.Accounts().DeleteAccount(ctx, alice.ID))
	_, err = st.Sessions().GetSessionByID(ctx, live.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// deleting a missing session is not an error
	require.NoError(t, st.Sessions().DeleteSession(ctx, live.ID))
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	alice := mustCreateAccount(t, st, "alice", false)

	err := st.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Accounts().SetAdmin(ctx, alice.ID, true))
		return store.ErrNotFound
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := st.Accounts().GetAccountByID(ctx, alice.ID)
	require.NoError(t, err)
	require.False(t, got.IsAdmin)
}
