package friendship

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new friendship repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByPair(ctx context.Context, userA, userB uuid.UUID) (*Friendship, error) {
	query := `
		SELECT id, requester_id, recipient_id, status, created_at, updated_at
		FROM friendships
		WHERE (requester_id = $1 AND recipient_id = $2)
		   OR (requester_id = $2 AND recipient_id = $1)
	`
	var record Friendship
	err := r.db.GetContext(ctx, &record, query, userA, userB)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("friendship repository get by pair: %w", err)
	}
	return &record, nil
}

func (r *repository) Create(ctx context.Context, record *Friendship) error {
	query := `
		INSERT INTO friendships (id, requester_id, recipient_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.RequesterID,
		record.RecipientID,
		record.Status,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("friendship repository create: %w", err)
	}
	return nil
}

func (r *repository) SetStatusIfPending(ctx context.Context, id uuid.UUID, status Status) (bool, error) {
	// Single-row compare-and-swap so two racing approvals cannot both win
	query := `
		UPDATE friendships SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`
	res, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return false, fmt.Errorf("friendship repository set status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *repository) DeleteByPair(ctx context.Context, userA, userB uuid.UUID) error {
	query := `
		DELETE FROM friendships
		WHERE (requester_id = $1 AND recipient_id = $2)
		   OR (requester_id = $2 AND recipient_id = $1)
	`
	_, err := r.db.ExecContext(ctx, query, userA, userB)
	if err != nil {
		return fmt.Errorf("friendship repository delete by pair: %w", err)
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Friendship, error) {
	query := `
		SELECT id, requester_id, recipient_id, status, created_at, updated_at
		FROM friendships
		WHERE requester_id = $1 OR recipient_id = $1
		ORDER BY created_at
	`
	var records []*Friendship
	err := r.db.SelectContext(ctx, &records, query, userID)
	if err != nil {
		return nil, fmt.Errorf("friendship repository list by user: %w", err)
	}
	return records, nil
}
