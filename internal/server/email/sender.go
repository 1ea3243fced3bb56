// Package email defines the NotificationSender capability consumed by the
// auth service and a Resend-backed implementation. Delivery is best effort:
// all sends happen inside background tasks and failures never reach the
// user-facing response.
package email

import "context"

// Sender delivers account-lifecycle notifications.
type Sender interface {
	SendWelcome(ctx context.Context, fullName, to string) error
	SendLoginAlert(ctx context.Context, fullName, to, clientIP, userAgent string) error
	SendResetRequest(ctx context.Context, fullName, to, resetLink string) error
	SendResetConfirmation(ctx context.Context, fullName, to string) error
}
