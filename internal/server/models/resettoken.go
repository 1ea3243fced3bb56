package models

import "time"

// PasswordResetToken is a single-use token for the forgot-password flow.
// A token is valid while un-expired and still present in storage;
// consumption is deletion.
type PasswordResetToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
