package friendship

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fitnest/fitnest-api/internal/domain/user"
)

// Relationship pairs a derived status with the counterpart user
type Relationship struct {
	Status RelationStatus
	Other  *user.User
	Record *Friendship
}

// Service implements the friendship state machine:
//
//	neutral -> pending (non-owning party sends a request)
//	pending -> friend  (recipient approves; requester re-approve is a no-op)
//	any     -> neutral (either party deletes; idempotent)
//
// The acting user is always an explicit parameter; there is no ambient
// session state at this layer.
type Service struct {
	repo  Repository
	users user.Repository
}

// NewService creates friendship service
func NewService(repo Repository, users user.Repository) *Service {
	return &Service{repo: repo, users: users}
}

// ResolveStatus classifies the relationship between userA and userB from
// userA's point of view, returning the backing record when one exists.
func (s *Service) ResolveStatus(ctx context.Context, userA, userB uuid.UUID) (RelationStatus, *Friendship, error) {
	if userA == userB {
		return "", nil, ErrSelfRelationship
	}

	record, err := s.repo.GetByPair(ctx, userA, userB)
	if err != nil {
		return "", nil, err
	}
	if record == nil {
		return RelationNeutral, nil, nil
	}

	status, err := classify(record, userA)
	if err != nil {
		return "", nil, err
	}
	return status, record, nil
}

// classify derives the four-way status of a record relative to viewer
func classify(record *Friendship, viewer uuid.UUID) (RelationStatus, error) {
	switch record.Status {
	case StatusFriend:
		return RelationFriend, nil
	case StatusPending:
		if record.RequesterID == viewer {
			return RelationPendingSent, nil
		}
		return RelationPendingToApprove, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnexpectedState, record.Status)
	}
}

// ListRelationships returns every relationship the user participates in,
// each paired with the counterpart user. Insertion order of the underlying
// records; call again to restart the sequence.
func (s *Service) ListRelationships(ctx context.Context, userID uuid.UUID) ([]Relationship, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	relationships := make([]Relationship, 0, len(records))
	for _, record := range records {
		status, err := classify(record, userID)
		if err != nil {
			return nil, err
		}

		other, err := s.users.GetByID(ctx, record.OtherUserID(userID))
		if err != nil {
			return nil, err
		}
		if other == nil {
			// Dangling record, counterpart row is gone
			log.Warn().
				Str("friendship_id", record.ID.String()).
				Msg("skipping friendship with missing counterpart user")
			continue
		}

		relationships = append(relationships, Relationship{
			Status: status,
			Other:  other,
			Record: record,
		})
	}

	return relationships, nil
}

// AddFriend sends a friend request or approves a pending one, depending on
// the current state. Re-adding an existing friend and re-approving one's own
// pending request are both no-ops.
func (s *Service) AddFriend(ctx context.Context, actorID, targetID uuid.UUID) (Outcome, *Friendship, error) {
	if actorID == targetID {
		return "", nil, ErrSelfRelationship
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return "", nil, err
	}
	if target == nil {
		return "", nil, ErrUserNotFound
	}

	status, record, err := s.ResolveStatus(ctx, actorID, targetID)
	if err != nil {
		return "", nil, err
	}

	switch status {
	case RelationNeutral:
		now := time.Now()
		record = &Friendship{
			ID:          uuid.New(),
			RequesterID: actorID,
			RecipientID: targetID,
			Status:      StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.Create(ctx, record); err != nil {
			return "", nil, err
		}
		return OutcomeRequested, record, nil

	case RelationPendingToApprove:
		updated, err := s.repo.SetStatusIfPending(ctx, record.ID, StatusFriend)
		if err != nil {
			return "", nil, err
		}
		if !updated {
			// Lost the race against another approve; state is friend either way
			return OutcomeAlreadyFriends, record, nil
		}
		record.Status = StatusFriend
		return OutcomeApproved, record, nil

	case RelationPendingSent:
		// Requester re-approving their own request must not flip state
		return OutcomeAlreadySent, record, nil

	case RelationFriend:
		return OutcomeAlreadyFriends, record, nil
	}

	return "", nil, fmt.Errorf("%w: %q", ErrUnexpectedState, status)
}

// RemoveFriend deletes the relationship between actor and target regardless
// of its state (unfriend, unsend, or reject). Removing a nonexistent
// relationship is a no-op. Returns the status prior to removal.
func (s *Service) RemoveFriend(ctx context.Context, actorID, targetID uuid.UUID) (RelationStatus, error) {
	if actorID == targetID {
		return "", ErrSelfRelationship
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return "", err
	}
	if target == nil {
		return "", ErrUserNotFound
	}

	status, record, err := s.ResolveStatus(ctx, actorID, targetID)
	if err != nil {
		return "", err
	}
	if record == nil {
		return RelationNeutral, nil
	}

	if err := s.repo.DeleteByPair(ctx, actorID, targetID); err != nil {
		return "", err
	}
	return status, nil
}
