package http

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/modsuggest/pkg/modsdk"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	e := newTestEnv(t)

	var health modsdk.HealthResponse
	rec := e.do(http.MethodGet, "/livez", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &health)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "test", health.Version)

	rec = e.do(http.MethodGet, "/readyz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &health)
	require.Equal(t, "ok", health.Checks.Database)
}

func TestReadyzReportsClosedDatabase(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, e.store.Close())

	rec := e.do(http.MethodGet, "/readyz", "", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(http.MethodGet, "/livez", "", "")
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestSwaggerDocServed(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(http.MethodGet, "/swagger/doc.json", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/admin/users/toggle-admin/{id}")
}

func TestSessionLoggerCarriesAccountID(t *testing.T) {
	var buf bytes.Buffer
	e := newTestEnvWithLogger(t, slog.New(slog.NewJSONHandler(&buf, nil)))

	e.register("alice", "pw123")
	alice := e.login("alice", "pw123")
	aliceID := e.accountID("alice")

	buf.Reset()
	e.submit(alice, "JEI", "https://www.curseforge.com/x")

	var found bool
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		if line["msg"] == "suggestion submitted" {
			found = true
			require.Equal(t, aliceID, line["account_id"])
			require.NotEmpty(t, line["req_id"])
		}
	}
	require.True(t, found, buf.String())
}
