package flash_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/modsuggest/pkg/flash"
	"github.com/stretchr/testify/require"
)

func TestWriteThenReadAndClear(t *testing.T) {
	rec := httptest.NewRecorder()
	flash.Write(rec, httptest.NewRequest(http.MethodPost, "/register", nil), flash.Success("Registration successful! Please log in."))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, flash.CookieName, cookies[0].Name)

	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	r.AddCookie(cookies[0])
	rec = httptest.NewRecorder()

	n, ok := flash.ReadAndClear(rec, r)
	require.True(t, ok)
	require.Equal(t, flash.KindSuccess, n.Kind)
	require.Equal(t, "Registration successful! Please log in.", n.Message)

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Equal(t, -1, cleared[0].MaxAge)
}

func TestWrite_DropsEmptyMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	flash.Write(rec, httptest.NewRequest(http.MethodGet, "/", nil), flash.Error("   "))
	require.Empty(t, rec.Result().Cookies())
}

func TestReadAndClear_RejectsTamperedCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	r.AddCookie(&http.Cookie{Name: flash.CookieName, Value: "%%%not-base64"})

	_, ok := flash.ReadAndClear(httptest.NewRecorder(), r)
	require.False(t, ok)
}

func TestReadAndClear_NoCookie(t *testing.T) {
	_, ok := flash.ReadAndClear(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.False(t, ok)
}
