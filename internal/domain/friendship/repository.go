package friendship

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines friendship data access interface
type Repository interface {
	// GetByPair returns the unique record involving both users in either
	// direction, or nil when none exists.
	GetByPair(ctx context.Context, userA, userB uuid.UUID) (*Friendship, error)

	Create(ctx context.Context, record *Friendship) error

	// SetStatusIfPending flips a pending record to the given status.
	// Returns false when the record was not pending anymore (raced approve).
	SetStatusIfPending(ctx context.Context, id uuid.UUID, status Status) (bool, error)

	// DeleteByPair removes the record for the pair. Deleting a missing
	// record is a no-op.
	DeleteByPair(ctx context.Context, userA, userB uuid.UUID) error

	// ListByUser returns every record the user participates in, insertion order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Friendship, error)
}
