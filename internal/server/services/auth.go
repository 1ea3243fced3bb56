// Package services contains server-side business logic. This file implements
// AuthService, which orchestrates the credential and token lifecycle:
// password verification, access-token issuance, cache-aside user lookup,
// session/audit recording, and the password-reset token flow.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/blogauth/internal/common"
	"github.com/dmitrijs2005/blogauth/internal/dbx"
	"github.com/dmitrijs2005/blogauth/internal/logging"
	"github.com/dmitrijs2005/blogauth/internal/server/audit"
	"github.com/dmitrijs2005/blogauth/internal/server/auth"
	"github.com/dmitrijs2005/blogauth/internal/server/cache"
	"github.com/dmitrijs2005/blogauth/internal/server/config"
	"github.com/dmitrijs2005/blogauth/internal/server/email"
	"github.com/dmitrijs2005/blogauth/internal/server/models"
	"github.com/dmitrijs2005/blogauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogauth/internal/server/tasks"
)

// User-facing messages. Login failures use one message for an unknown email
// and a wrong password so responses cannot be used to enumerate accounts,
// and ForgotPassword reports the same text whether or not the account exists.
const (
	MsgEmailPasswordRequired = "Email and password are required"
	MsgInvalidCredentials    = "Invalid email or password"
	MsgLoginSuccessful       = "Login successful"
	MsgDuplicateAccount      = "User with this email already exists"
	MsgRegistrationOK        = "Registration successful"
	MsgEmailRequired         = "Email is required"
	MsgResetLinkSent         = "If the email exists, a password reset link has been sent"
	MsgResetFieldsRequired   = "Email, token and new password are required"
	MsgPasswordMismatch      = "Passwords do not match"
	MsgWeakPassword          = "Password must be at least 6 characters long"
	MsgInvalidResetToken     = "Invalid or expired reset token"
	MsgPasswordResetOK       = "Password reset successfully"
)

// MinPasswordLength is the minimum accepted length for a new password.
const MinPasswordLength = 6

// resetTokenBytes is the number of random bytes per reset token (256 bits,
// 64 hex characters on the wire).
const resetTokenBytes = 32

// ClientInfo carries request metadata captured synchronously by the
// transport layer. Background tasks receive these plain strings, never a
// live request handle.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// LoginRequest is the input of Login.
type LoginRequest struct {
	Email    string
	Password string
	Client   ClientInfo
}

// RegisterRequest is the input of Register.
type RegisterRequest struct {
	Email    string
	Password string
	FullName string
}

// ResetPasswordRequest is the input of ResetPassword.
type ResetPasswordRequest struct {
	Email           string
	Token           string
	NewPassword     string
	ConfirmPassword string
}

// UserInfo is the minimal user projection returned to clients.
type UserInfo struct {
	UserID   int64  `json:"userId"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Response is the generic success/message envelope. Expected business
// outcomes (wrong password, duplicate account, bad token) are reported here
// with Success=false; only storage outages become Go errors.
type Response struct {
	Success bool
	Message string
}

// LoginResponse extends Response with the issued token and user projection.
type LoginResponse struct {
	Success bool
	Message string
	Token   string
	User    *UserInfo
}

// AuthService composes the credential store, user cache, token issuer,
// background dispatcher, notification sender, and audit publisher into the
// five auth operations. It owns no state of its own.
type AuthService struct {
	db            *sql.DB
	repos         repomanager.RepositoryManager
	users         *cache.CachedUsers
	issuer        *auth.TokenIssuer
	dispatcher    *tasks.Dispatcher
	sender        email.Sender
	audit         audit.Publisher
	logger        logging.Logger
	resetValidity time.Duration
	resetLinkBase string
}

// NewAuthService constructs an AuthService using repositories and server
// config. The users argument must be the cache decorator so that every
// password mutation path shares one eviction choke point.
func NewAuthService(
	db *sql.DB,
	repos repomanager.RepositoryManager,
	users *cache.CachedUsers,
	issuer *auth.TokenIssuer,
	dispatcher *tasks.Dispatcher,
	sender email.Sender,
	auditPub audit.Publisher,
	logger logging.Logger,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		db:            db,
		repos:         repos,
		users:         users,
		issuer:        issuer,
		dispatcher:    dispatcher,
		sender:        sender,
		audit:         auditPub,
		logger:        logger,
		resetValidity: cfg.ResetTokenValidityDuration,
		resetLinkBase: cfg.ResetLinkBaseURL,
	}
}

// Login verifies credentials and mints an access token. Session recording,
// the last-login update, and the login-alert email run as detached
// background tasks; the response never waits on them.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if isBlank(req.Email) || isBlank(req.Password) {
		return &LoginResponse{Success: false, Message: MsgEmailPasswordRequired}, nil
	}

	emailAddr := normalizeEmail(req.Email)

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &LoginResponse{Success: false, Message: MsgInvalidCredentials}, nil
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return &LoginResponse{Success: false, Message: MsgInvalidCredentials}, nil
	}

	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	expiresAt := time.Now().Add(s.issuer.Validity())

	// Capture plain values for the detached tasks; req and user must not
	// be touched after this function returns.
	userID := user.ID
	userEmail := user.Email
	fullName := user.FullName
	client := req.Client

	s.dispatcher.Submit("session.create", func(ctx context.Context) error {
		return s.repos.Sessions(s.db).Create(ctx, userID, token, expiresAt)
	})
	s.dispatcher.Submit("user.update_last_login", func(ctx context.Context) error {
		return s.users.UpdateLastLogin(ctx, userID)
	})
	s.dispatcher.Submit("email.login_alert", func(ctx context.Context) error {
		return s.sender.SendLoginAlert(ctx, fullName, userEmail, client.IP, client.UserAgent)
	})
	s.publishAudit("login", emailAddr)

	return &LoginResponse{
		Success: true,
		Message: MsgLoginSuccessful,
		Token:   token,
		User:    &UserInfo{UserID: user.ID, Email: user.Email, FullName: user.FullName},
	}, nil
}

// Register creates a new account. The caller must subsequently log in; no
// token is issued here. The welcome email is a detached background task.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*Response, error) {
	if isBlank(req.Email) || isBlank(req.Password) {
		return &Response{Success: false, Message: MsgEmailPasswordRequired}, nil
	}

	emailAddr := normalizeEmail(req.Email)

	_, err := s.users.GetByEmail(ctx, emailAddr)
	if err == nil {
		return &Response{Success: false, Message: MsgDuplicateAccount}, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        emailAddr,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	fullName := created.FullName
	s.dispatcher.Submit("email.welcome", func(ctx context.Context) error {
		return s.sender.SendWelcome(ctx, fullName, emailAddr)
	})
	s.publishAudit("register", emailAddr)

	return &Response{Success: true, Message: MsgRegistrationOK}, nil
}

// ForgotPassword issues a reset token and emails a reset link. The response
// is identical whether or not the account exists, so it cannot be used to
// probe for registered emails.
func (s *AuthService) ForgotPassword(ctx context.Context, emailInput string) (*Response, error) {
	if isBlank(emailInput) {
		return &Response{Success: false, Message: MsgEmailRequired}, nil
	}

	emailAddr := normalizeEmail(emailInput)

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return &Response{Success: true, Message: MsgResetLinkSent}, nil
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	token, err := common.MakeRandHexString(resetTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("error generating reset token: %w", err)
	}

	if err := s.repos.ResetTokens(s.db).Create(ctx, user.ID, token, s.resetValidity); err != nil {
		return nil, fmt.Errorf("error storing reset token: %w", err)
	}

	fullName := user.FullName
	resetLink := fmt.Sprintf("%s?email=%s&token=%s", s.resetLinkBase, url.QueryEscape(emailAddr), token)
	s.dispatcher.Submit("email.reset_request", func(ctx context.Context) error {
		return s.sender.SendResetRequest(ctx, fullName, emailAddr, resetLink)
	})
	s.publishAudit("forgot_password", emailAddr)

	return &Response{Success: true, Message: MsgResetLinkSent}, nil
}

// ResetPassword consumes a reset token and replaces the user's password.
// The verify/update/delete unit runs in a single transaction: either all
// three happen or none do. On success the cached user entry is evicted
// before the response is returned.
func (s *AuthService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) (*Response, error) {
	if isBlank(req.Email) || isBlank(req.Token) || isBlank(req.NewPassword) || isBlank(req.ConfirmPassword) {
		return &Response{Success: false, Message: MsgResetFieldsRequired}, nil
	}
	if req.NewPassword != req.ConfirmPassword {
		return &Response{Success: false, Message: MsgPasswordMismatch}, nil
	}
	if len(req.NewPassword) < MinPasswordLength {
		return &Response{Success: false, Message: MsgWeakPassword}, nil
	}

	emailAddr := normalizeEmail(req.Email)

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		resetRepo := s.repos.ResetTokens(tx)

		if _, err := resetRepo.FindValid(ctx, emailAddr, req.Token); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrResetTokenInvalid
			}
			return err
		}
		if err := s.repos.Users(tx).UpdatePassword(ctx, emailAddr, hash); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrResetTokenInvalid
			}
			return err
		}
		return resetRepo.Delete(ctx, req.Token)
	})
	if err != nil {
		if errors.Is(err, common.ErrResetTokenInvalid) {
			return &Response{Success: false, Message: MsgInvalidResetToken}, nil
		}
		return nil, fmt.Errorf("error resetting password: %w", err)
	}

	// The tx wrote through a tx-bound repo, so evict explicitly.
	s.users.Invalidate(emailAddr)

	s.dispatcher.Submit("email.reset_confirmation", func(ctx context.Context) error {
		user, err := s.users.GetByEmail(ctx, emailAddr)
		if err != nil {
			return err
		}
		return s.sender.SendResetConfirmation(ctx, user.FullName, user.Email)
	})
	s.publishAudit("reset_password", emailAddr)

	return &Response{Success: true, Message: MsgPasswordResetOK}, nil
}

// Profile returns the user projection for an authenticated subject. A
// missing or deactivated account propagates common.ErrorNotFound.
func (s *AuthService) Profile(ctx context.Context, emailInput string) (*UserInfo, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(emailInput))
	if err != nil {
		return nil, err
	}
	return &UserInfo{UserID: user.ID, Email: user.Email, FullName: user.FullName}, nil
}

// VerifyResetToken reports whether (email, token) identifies a still-valid
// reset token. It never consumes or extends the token; clients use it to
// pre-validate a link before showing the reset form.
func (s *AuthService) VerifyResetToken(ctx context.Context, emailInput, token string) (bool, error) {
	if isBlank(emailInput) || isBlank(token) {
		return false, nil
	}

	_, err := s.repos.ResetTokens(s.db).FindValid(ctx, normalizeEmail(emailInput), token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("error verifying reset token: %w", err)
	}
	return true, nil
}

// publishAudit enqueues a one-line audit event; a missing publisher or a
// publish failure never affects the request outcome.
func (s *AuthService) publishAudit(event, emailAddr string) {
	if s.audit == nil {
		return
	}
	line := fmt.Sprintf("%s %s %s", time.Now().UTC().Format(time.RFC3339), event, emailAddr)
	s.dispatcher.Submit("audit.publish", func(ctx context.Context) error {
		return s.audit.Publish(ctx, line)
	})
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
