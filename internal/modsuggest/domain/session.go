package domain

import "time"

// Session binds a signed session token to an account. The row is the source
// of truth: a token whose session row is gone is no longer valid.
type Session struct {
	ID        string
	AccountID string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
