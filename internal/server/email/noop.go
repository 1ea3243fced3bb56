package email

import (
	"context"

	"github.com/dmitrijs2005/blogauth/internal/logging"
)

// NoopSender logs notifications instead of delivering them. It is wired in
// when no Resend API key is configured, e.g. in local development.
type NoopSender struct {
	logger logging.Logger
}

func NewNoopSender(logger logging.Logger) *NoopSender {
	return &NoopSender{logger: logger}
}

func (s *NoopSender) SendWelcome(ctx context.Context, fullName, to string) error {
	s.logger.Info(ctx, "email suppressed (no sender configured)", "kind", "welcome", "to", to)
	return nil
}

func (s *NoopSender) SendLoginAlert(ctx context.Context, fullName, to, clientIP, userAgent string) error {
	s.logger.Info(ctx, "email suppressed (no sender configured)", "kind", "login_alert", "to", to, "ip", clientIP)
	return nil
}

func (s *NoopSender) SendResetRequest(ctx context.Context, fullName, to, resetLink string) error {
	s.logger.Info(ctx, "email suppressed (no sender configured)", "kind", "reset_request", "to", to)
	return nil
}

func (s *NoopSender) SendResetConfirmation(ctx context.Context, fullName, to string) error {
	s.logger.Info(ctx, "email suppressed (no sender configured)", "kind", "reset_confirmation", "to", to)
	return nil
}
