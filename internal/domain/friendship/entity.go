package friendship

import (
	"time"

	"github.com/google/uuid"
)

// Status is the stored state of a friendship record
type Status string

const (
	StatusPending Status = "pending"
	StatusFriend  Status = "friend"
)

// Friendship is a directed friend-request record. At most one record exists
// per unordered user pair; the pair is queried symmetrically while the
// requester/recipient direction decides how a pending record is classified.
type Friendship struct {
	ID          uuid.UUID `db:"id" json:"id"`
	RequesterID uuid.UUID `db:"requester_id" json:"requester_id"`
	RecipientID uuid.UUID `db:"recipient_id" json:"recipient_id"`
	Status      Status    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// OtherUserID returns the counterpart of userID in this record
func (f *Friendship) OtherUserID(userID uuid.UUID) uuid.UUID {
	if f.RequesterID == userID {
		return f.RecipientID
	}
	return f.RequesterID
}

// RelationStatus is the derived relationship classification between two
// users, always computed relative to the querying user. The four variants
// are exhaustive and mutually exclusive.
type RelationStatus string

const (
	RelationFriend           RelationStatus = "friend"
	RelationPendingSent      RelationStatus = "pending-sent-request"
	RelationPendingToApprove RelationStatus = "pending-to-approve"
	RelationNeutral          RelationStatus = "neutral"
)

// Outcome describes what AddFriend actually did
type Outcome string

const (
	OutcomeRequested      Outcome = "requested"
	OutcomeApproved       Outcome = "approved"
	OutcomeAlreadyFriends Outcome = "already_friends"
	OutcomeAlreadySent    Outcome = "already_sent"
)
