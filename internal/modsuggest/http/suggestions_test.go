package http

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/aussiebroadwan/modsuggest/internal/modsuggest/domain"
	"github.com/aussiebroadwan/modsuggest/pkg/modsdk"
	"github.com/stretchr/testify/require"
)

func TestSubmitSuggestion(t *testing.T) {
	e := newTestEnv(t)
	e.register("alice", "pw123")
	token := e.login("alice", "pw123")

	t.Run("missing fields", func(t *testing.T) {
		for _, body := range []string{
			`{"mod_name":"Sodium"}`,
			`{"mod_url":"https://modrinth.com/mod/sodium"}`,
			`{"mod_name":"","mod_url":""}`,
			`{}`,
		} {
			requireError(t, e.do(http.MethodPost, "/suggest", body, token), http.StatusBadRequest, modsdk.ErrorCodeValidation)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		requireError(t, e.do(http.MethodPost, "/suggest", `{"mod_name":`, token), http.StatusBadRequest, modsdk.ErrorCodeValidation)
	})

	t.Run("created", func(t *testing.T) {
		rec := e.do(http.MethodPost, "/suggest",
			`{"mod_name":"Sodium","mod_url":"https://Modrinth.com/mod/sodium","description":"fast"}`, token)
		require.Equal(t, http.StatusOK, rec.Code)

		var out modsdk.SubmitSuggestionResponse
		decode(t, rec, &out)
		require.Equal(t, "Mod suggestion submitted successfully", out.Message)
		require.NotEmpty(t, out.Suggestion.ID)
		require.Equal(t, "Sodium", out.Suggestion.ModName)
		require.Equal(t, string(domain.SourceModrinth), out.Suggestion.Source)
		require.Equal(t, string(domain.StatusPending), out.Suggestion.Status)
	})
}

func TestListSuggestions(t *testing.T) {
	e := newTestEnv(t)
	e.register("alice", "pw123")
	e.register("bob", "pw123")
	alice := e.login("alice", "pw123")
	bob := e.login("bob", "pw123")

	first := e.submit(alice, "JEI", "https://www.curseforge.com/minecraft/mc-mods/jei")
	second := e.submit(bob, "Sodium", "https://modrinth.com/mod/sodium")

	rec := e.do(http.MethodGet, "/api/suggestions", "", alice)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []modsdk.SuggestionItem
	decode(t, rec, &items)
	require.Len(t, items, 2)

	require.Equal(t, second, items[0].ID)
	require.Equal(t, "bob", items[0].Author)
	require.Equal(t, "modrinth", items[0].Source)
	require.Equal(t, first, items[1].ID)
	require.Equal(t, "alice", items[1].Author)
	require.Equal(t, "curseforge", items[1].Source)

	dateFormat := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}$`)
	for _, it := range items {
		require.Regexp(t, dateFormat, it.SubmittedDate)
		require.Nil(t, it.RejectionReason)
		require.Equal(t, "pending", it.Status)
	}

	// the raw JSON carries an explicit null and no password material
	require.Contains(t, rec.Body.String(), `"rejection_reason":null`)
	require.NotContains(t, rec.Body.String(), "argon2")
}

func TestIndexPage(t *testing.T) {
	e := newTestEnv(t)
	e.register("alice", "pw123")
	token := e.login("alice", "pw123")
	id := e.submit(token, "JEI", "https://www.curseforge.com/x")

	rec := e.do(http.MethodGet, "/", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	var page modsdk.IndexResponse
	decode(t, rec, &page)
	require.Equal(t, "alice", page.Account.Username)
	require.Len(t, page.Suggestions, 1)
	require.Equal(t, id, page.Suggestions[0].ID)

	// unknown paths are not swallowed by the index route
	require.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/nope", "", token).Code)
}
