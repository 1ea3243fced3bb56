// Package models contains the persistent entities owned by the credential
// store: users, login sessions, and password-reset tokens.
package models

import "time"

// User is the durable account record. Email is stored normalized
// (trimmed, lower-cased) and compared case-insensitively.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	IsActive     bool
	LastLogin    *time.Time
}
