package domain

import "time"

type Account struct {
	ID           string
	Username     string
	PasswordHash string // argon2 encoded
	IsAdmin      bool
	CreatedAt    time.Time
}
