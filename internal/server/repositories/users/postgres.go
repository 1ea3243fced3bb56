// Package users provides a PostgreSQL-backed repository for user accounts.
package users

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

// Create inserts a new user and returns it with the generated id and
// timestamps filled in. The email is expected to be normalized already.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (email, password_hash, full_name)
		VALUES ($1, $2, $3)
		RETURNING user_id, created_at, updated_at, is_active
	`
	err := r.db.QueryRowContext(ctx, query, user.Email, user.PasswordHash, user.FullName).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.IsActive)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// GetByEmail returns the active user with the given email, compared
// case-insensitively. Absent or deactivated users yield common.ErrorNotFound.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT user_id, email, password_hash, full_name,
		       created_at, updated_at, is_active, last_login
		FROM users
		WHERE lower(email) = lower($1) AND is_active = TRUE
	`
	user := &models.User{}
	var fullName sql.NullString
	var lastLogin sql.NullTime

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &fullName,
		&user.CreatedAt, &user.UpdatedAt, &user.IsActive, &lastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.FullName = fullName.String
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}
	return user, nil
}

// UpdateLastLogin stamps the user's last_login with the current time.
func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	query := `
		UPDATE users SET last_login = $1
		WHERE user_id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// UpdatePassword replaces the user's password hash and bumps updated_at.
// Zero affected rows yield common.ErrorNotFound so that a transactional
// caller can abort the whole unit.
func (r *PostgresRepository) UpdatePassword(ctx context.Context, email string, passwordHash string) error {
	query := `
		UPDATE users SET password_hash = $1, updated_at = $2
		WHERE lower(email) = lower($3)
	`
	res, err := r.db.ExecContext(ctx, query, passwordHash, time.Now().UTC(), email)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
