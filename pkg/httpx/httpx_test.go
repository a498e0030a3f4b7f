package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/modsuggest/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRecover(t *testing.T) {
	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), httpx.Recover())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body httpx.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "server_error", body.Error)
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusNotFound, "not_found", "Suggestion not found")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"error":"not_found","error_description":"Suggestion not found"}`, rec.Body.String())
}

func TestSeeOther(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.SeeOther(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "/")

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Reason string `json:"reason"`
	}

	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"reason":"broken"}`))
		require.NoError(t, httpx.DecodeJSON(httptest.NewRecorder(), r, &v))
		require.Equal(t, "broken", v.Reason)
	})

	t.Run("empty", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		require.ErrorIs(t, httpx.DecodeJSON(httptest.NewRecorder(), r, &v), httpx.ErrEmptyBody)

		r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		require.ErrorIs(t, httpx.DecodeJSON(httptest.NewRecorder(), r, &v), httpx.ErrEmptyBody)
	})

	t.Run("malformed", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"reason":`))
		err := httpx.DecodeJSON(httptest.NewRecorder(), r, &v)
		require.Error(t, err)
		require.NotErrorIs(t, err, httpx.ErrEmptyBody)
	})
}

func TestCookie_RoundTrip(t *testing.T) {
	c := httpx.Cookie{Name: "modsuggest_session"}

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	c.Write(rec, r, "token-value", time.Now().Add(time.Hour))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.True(t, cookies[0].HttpOnly)
	require.False(t, cookies[0].Secure)
	require.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	got, ok := c.Read(next)
	require.True(t, ok)
	require.Equal(t, "token-value", got)

	rec = httptest.NewRecorder()
	c.Clear(rec, next)
	require.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}

func TestCookie_SecureBehindProxy(t *testing.T) {
	c := httpx.Cookie{Name: "s"}
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-Proto", "https")

	rec := httptest.NewRecorder()
	c.Write(rec, r, "v", time.Time{})
	require.True(t, rec.Result().Cookies()[0].Secure)

	_, ok := c.Read(httptest.NewRequest(http.MethodGet, "/", nil))
	require.False(t, ok)
}
