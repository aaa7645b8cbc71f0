package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines user data access interface
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	UpdateAvatarKey(ctx context.Context, id uuid.UUID, avatarKey string) error
	// SearchByUsername returns users whose username contains q, excluding excludeID.
	SearchByUsername(ctx context.Context, q string, excludeID uuid.UUID, limit int) ([]*User, error)
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create creates a new user
func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, email, username, password_hash, avatar_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.AvatarKey,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("user repository create: %w", err)
	}

	return nil
}

// GetByID returns user by ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
		SELECT id, email, username, password_hash, avatar_key, created_at, updated_at
		FROM users WHERE id = $1
	`
	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// GetByEmail returns user by email
func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, username, password_hash, avatar_key, created_at, updated_at
		FROM users WHERE email = $1
	`
	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// GetByUsername returns user by username
func (r *repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, email, username, password_hash, avatar_key, created_at, updated_at
		FROM users WHERE username = $1
	`
	var user User
	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// UpdateAvatarKey updates the user's avatar object key
func (r *repository) UpdateAvatarKey(ctx context.Context, id uuid.UUID, avatarKey string) error {
	query := `UPDATE users SET avatar_key = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, avatarKey)
	if err != nil {
		return fmt.Errorf("user repository update avatar: %w", err)
	}
	return nil
}

// SearchByUsername finds users by username substring, excluding the searcher
func (r *repository) SearchByUsername(ctx context.Context, q string, excludeID uuid.UUID, limit int) ([]*User, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, email, username, password_hash, avatar_key, created_at, updated_at
		FROM users
		WHERE username ILIKE '%' || $1 || '%' AND id <> $2
		ORDER BY username
		LIMIT $3
	`
	var users []*User
	err := r.db.SelectContext(ctx, &users, query, q, excludeID, limit)
	if err != nil {
		return nil, fmt.Errorf("user repository search: %w", err)
	}
	return users, nil
}
