package resettokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/blogauth/internal/server/models"
)

// Repository is the storage contract for password-reset tokens.
// FindValid returns common.ErrorNotFound for an absent or expired token.
type Repository interface {
	Create(ctx context.Context, userID int64, token string, validity time.Duration) error
	FindValid(ctx context.Context, email string, token string) (*models.PasswordResetToken, error)
	Delete(ctx context.Context, token string) error
}
