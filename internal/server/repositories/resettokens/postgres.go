// Package resettokens provides a PostgreSQL-backed repository for single-use
// password-reset tokens. A token is valid while a row exists for it and its
// expiry is in the future; consuming a token deletes the row.
package resettokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/blogauth/internal/common"
	"github.com/dmitrijs2005/blogauth/internal/dbx"
	"github.com/dmitrijs2005/blogauth/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new reset token for userID with an expiry of now+validity.
// Previously issued tokens for the same user are left untouched.
func (r *PostgresRepository) Create(ctx context.Context, userID int64, token string, validity time.Duration) error {
	query := `
		INSERT INTO password_reset_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, userID, token, time.Now().UTC().Add(validity)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// FindValid returns the un-expired reset token row matching (email, token).
// It does not consume or extend the token. Absent or expired rows yield
// common.ErrorNotFound.
func (r *PostgresRepository) FindValid(ctx context.Context, email string, token string) (*models.PasswordResetToken, error) {
	query := `
		SELECT prt.id, prt.user_id, prt.token, prt.expires_at
		FROM password_reset_tokens prt
		JOIN users u ON prt.user_id = u.user_id
		WHERE lower(u.email) = lower($1) AND prt.token = $2 AND prt.expires_at > $3
	`
	rt := &models.PasswordResetToken{}
	err := r.db.QueryRowContext(ctx, query, email, token, time.Now().UTC()).
		Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rt, nil
}

// Delete removes a reset token by its token string.
func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	query := `
		DELETE FROM password_reset_tokens
		WHERE token = $1
	`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
