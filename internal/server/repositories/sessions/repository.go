package sessions

import (
	"context"
	"time"
)

// Repository records issued access tokens as an append-only audit trail.
type Repository interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error
}
