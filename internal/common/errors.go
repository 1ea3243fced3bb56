// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Validation errors (blank or malformed input).
	ErrorValidation = errors.New("validation error")

	// Auth errors.
	ErrInvalidToken     = errors.New("invalid token")
	ErrMissingJWTConfig = errors.New("jwt secret key, issuer and audience must be configured")

	// Reset-token lifecycle errors.
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
)
