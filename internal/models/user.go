package models

import "time"

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 4

// User is a registered account. PasswordHash holds a bcrypt hash. Currency is
// the preferred display currency; empty uses the configured default.
type User struct {
	ID           string    `json:"user_id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password"`
	Currency     string    `json:"currency,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
