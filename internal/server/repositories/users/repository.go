package users

import (
	"context"

	"github.com/dmitrijs2005/blogauth/internal/server/models"
)

// Repository is the credential store contract for user records.
// Lookups never error on "not found"; they return common.ErrorNotFound,
// which callers match with errors.Is.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
	UpdatePassword(ctx context.Context, email string, passwordHash string) error
}
