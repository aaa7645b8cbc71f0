package note

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines note and share data access interface
type Repository interface {
	Create(ctx context.Context, note *Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*Note, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Note, error)
	// SearchByUser returns the user's notes whose data contains q.
	SearchByUser(ctx context.Context, userID uuid.UUID, q string) ([]*Note, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CreateShare(ctx context.Context, share *Share) error
	GetShareByID(ctx context.Context, id uuid.UUID) (*Share, error)
	// GetShare returns an existing share of the note to the target, or nil.
	GetShare(ctx context.Context, noteID, targetUserID uuid.UUID) (*Share, error)
	// ListSharesByUser returns shares where the user is owner or target.
	ListSharesByUser(ctx context.Context, userID uuid.UUID) ([]*Share, error)
	DeleteShare(ctx context.Context, id uuid.UUID) error
}
