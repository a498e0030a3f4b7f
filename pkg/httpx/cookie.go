package httpx

import (
	"net/http"
	"strings"
	"time"
)

// Cookie describes an HttpOnly, SameSite=Lax cookie scoped to the whole site.
type Cookie struct {
	Name string

	// ForceSecure marks the cookie Secure even when the request looks like
	// plain HTTP, for deployments behind a proxy that strips the header.
	ForceSecure bool
}

// Read returns the trimmed cookie value when present and non-empty.
func (c Cookie) Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(c.Name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Write sets the cookie. A zero expires makes it a browser session cookie.
func (c Cookie) Write(w http.ResponseWriter, r *http.Request, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   c.ForceSecure || IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the cookie.
func (c Cookie) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.ForceSecure || IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
