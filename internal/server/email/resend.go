package email

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends notifications through the Resend HTTP API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender constructs a sender. Both the API key and the from
// address are required.
func NewResendSender(apiKey, from string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, errors.New("resend api key is not set")
	}
	if from == "" {
		return nil, errors.New("email from address is not set")
	}
	return &ResendSender{client: resend.NewClient(apiKey), from: from}, nil
}

func (s *ResendSender) send(ctx context.Context, to, subject, html string) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}

func greeting(fullName string) string {
	if fullName == "" {
		return "Hello,"
	}
	return "Hello " + fullName + ","
}

func (s *ResendSender) SendWelcome(ctx context.Context, fullName, to string) error {
	html := fmt.Sprintf(`
		<p>%s</p>
		<p>Welcome! Your account has been created and you can log in right away.</p>
	`, greeting(fullName))
	return s.send(ctx, to, "Welcome aboard!", html)
}

func (s *ResendSender) SendLoginAlert(ctx context.Context, fullName, to, clientIP, userAgent string) error {
	html := fmt.Sprintf(`
		<p>%s</p>
		<p>We noticed a new login to your account.</p>
		<p><strong>Login details:</strong><br/>
		IP address: %s<br/>
		Device: %s<br/>
		Time: %s</p>
		<p>If this was you, no action is needed. If not, please reset your password immediately.</p>
	`, greeting(fullName), clientIP, userAgent, time.Now().UTC().Format("January 02, 2006 at 15:04:05 MST"))
	return s.send(ctx, to, "Login notification", html)
}

func (s *ResendSender) SendResetRequest(ctx context.Context, fullName, to, resetLink string) error {
	html := fmt.Sprintf(`
		<p>%s</p>
		<p>We received a request to reset your password. The link below is valid
		for one hour and can be used once.</p>
		<p><a href="%s">Reset your password</a></p>
		<p>If you did not request this, you can safely ignore this email.</p>
	`, greeting(fullName), resetLink)
	return s.send(ctx, to, "Password reset request", html)
}

func (s *ResendSender) SendResetConfirmation(ctx context.Context, fullName, to string) error {
	html := fmt.Sprintf(`
		<p>%s</p>
		<p>Your password was reset successfully at %s.</p>
		<p>If you did not perform this change, contact support immediately.</p>
	`, greeting(fullName), time.Now().UTC().Format("January 02, 2006 at 15:04:05 MST"))
	return s.send(ctx, to, "Password reset successful", html)
}
