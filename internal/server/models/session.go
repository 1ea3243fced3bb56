package models

import "time"

// Session is an append-only audit record of an issued access token.
// It is written once per successful login and never read back here.
type Session struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
