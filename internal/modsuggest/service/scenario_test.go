package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/domain"
	"github.com/stretchr/testify/require"
)

// TestReviewScenario walks a suggestion from submission through rejection
// and re-approval.
func TestReviewScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.bootstrap.EnsureDefaultAdmin(ctx)
	require.NoError(t, err)

	_, err = f.identity.Register(ctx, "alice", "pw123")
	require.NoError(t, err)

	login, err := f.identity.Login(ctx, "alice", "pw123")
	require.NoError(t, err)
	alice, err := f.identity.RequireAuth(ctx, login.Token)
	require.NoError(t, err)

	sg, err := f.suggestions.Submit(ctx, alice, SubmitInput{
		ModName: "Test",
		ModURL:  "https://www.curseforge.com/x",
	})
	require.NoError(t, err)
	require.Equal(t, domain.SourceCurseForge, sg.Source)
	require.Equal(t, domain.StatusPending, sg.Status)

	adminLogin, err := f.identity.Login(ctx, DefaultAdminUsername, DefaultAdminPassword)
	require.NoError(t, err)
	admin, err := f.identity.RequireAuth(ctx, adminLogin.Token)
	require.NoError(t, err)
	require.NoError(t, RequireAdmin(admin))

	rejected, err := f.suggestions.Reject(ctx, admin, sg.ID, ptr("broken"))
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, rejected.Status)
	require.Equal(t, "broken", rejected.RejectionReason)

	approved, err := f.suggestions.Approve(ctx, admin, sg.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusApproved, approved.Status)
	require.Equal(t, "", approved.RejectionReason)

	views, err := f.suggestions.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "alice", views[0].AuthorUsername)
	require.Equal(t, domain.StatusApproved, views[0].Status)
}
