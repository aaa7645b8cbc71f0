package note

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

// NewRepository creates note repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, note *Note) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	now := time.Now()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = now

	query := `
		INSERT INTO notes (id, user_id, name, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		note.ID, note.UserID, note.Name, note.Data, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Note, error) {
	var note Note
	query := `SELECT * FROM notes WHERE id = $1`
	err := r.db.GetContext(ctx, &note, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return &note, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Note, error) {
	var notes []*Note
	query := `SELECT * FROM notes WHERE user_id = $1 ORDER BY created_at`
	if err := r.db.SelectContext(ctx, &notes, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

func (r *repository) SearchByUser(ctx context.Context, userID uuid.UUID, q string) ([]*Note, error) {
	var notes []*Note
	query := `
		SELECT * FROM notes
		WHERE user_id = $1 AND data ILIKE '%' || $2 || '%'
		ORDER BY created_at
	`
	if err := r.db.SelectContext(ctx, &notes, query, userID, q); err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	return notes, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *repository) CreateShare(ctx context.Context, share *Share) error {
	if share.ID == uuid.Nil {
		share.ID = uuid.New()
	}
	if share.SharedAt.IsZero() {
		share.SharedAt = time.Now()
	}

	query := `
		INSERT INTO note_shares (id, note_id, owner_user_id, target_user_id, shared_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		share.ID, share.NoteID, share.OwnerUserID, share.TargetUserID, share.SharedAt)
	if err != nil {
		return fmt.Errorf("failed to create share: %w", err)
	}
	return nil
}

func (r *repository) GetShareByID(ctx context.Context, id uuid.UUID) (*Share, error) {
	var share Share
	err := r.db.GetContext(ctx, &share, `SELECT * FROM note_shares WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get share: %w", err)
	}
	return &share, nil
}

func (r *repository) GetShare(ctx context.Context, noteID, targetUserID uuid.UUID) (*Share, error) {
	var share Share
	query := `SELECT * FROM note_shares WHERE note_id = $1 AND target_user_id = $2`
	err := r.db.GetContext(ctx, &share, query, noteID, targetUserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get share: %w", err)
	}
	return &share, nil
}

func (r *repository) ListSharesByUser(ctx context.Context, userID uuid.UUID) ([]*Share, error) {
	var shares []*Share
	query := `
		SELECT * FROM note_shares
		WHERE owner_user_id = $1 OR target_user_id = $1
		ORDER BY shared_at
	`
	if err := r.db.SelectContext(ctx, &shares, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	return shares, nil
}

func (r *repository) DeleteShare(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM note_shares WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete share: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrShareNotFound
	}
	return nil
}
