// Package flash carries one-shot notices across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/modsuggest/pkg/httpx"
)

// CookieName is the cookie used for pending notices.
const CookieName = "modsuggest_flash"

var cookie = httpx.Cookie{Name: CookieName}

// Kind classifies a notice.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notice is a single message shown on the next page load.
type Notice struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func Success(msg string) Notice { return Notice{Kind: KindSuccess, Message: msg} }
func Error(msg string) Notice   { return Notice{Kind: KindError, Message: msg} }

// Write stores notice for the next request. Invalid notices are dropped.
func Write(w http.ResponseWriter, r *http.Request, notice Notice) {
	n, ok := normalize(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}
	cookie.Write(w, r, base64.RawURLEncoding.EncodeToString(payload), time.Time{})
}

// ReadAndClear returns the pending notice, if any, and expires the cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	raw, ok := cookie.Read(r)
	if !ok {
		return Notice{}, false
	}
	cookie.Clear(w, r)
	return Decode(raw)
}

// Decode parses a raw cookie value as written by Write.
func Decode(raw string) (Notice, bool) {
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Notice{}, false
	}
	var n Notice
	if err := json.Unmarshal(b, &n); err != nil {
		return Notice{}, false
	}
	return normalize(n)
}

func normalize(n Notice) (Notice, bool) {
	n.Message = strings.TrimSpace(n.Message)
	if n.Message == "" {
		return Notice{}, false
	}
	switch n.Kind {
	case KindSuccess, KindError:
		return n, true
	default:
		return Notice{}, false
	}
}
