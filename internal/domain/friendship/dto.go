package friendship

import (
	"time"

	"github.com/google/uuid"

	"github.com/fitnest/fitnest-api/internal/domain/user"
)

// FriendResponse is one entry of the relationship list: the counterpart
// user plus the status as seen by the requesting user.
type FriendResponse struct {
	UserID   uuid.UUID      `json:"user_id"`
	Username string         `json:"username"`
	Status   RelationStatus `json:"status"`
	Since    time.Time      `json:"since"`
}

// StatusResponse reports the relationship status toward a single user
type StatusResponse struct {
	UserID uuid.UUID      `json:"user_id"`
	Status RelationStatus `json:"status"`
}

// AddResponse reports what the add operation did
type AddResponse struct {
	UserID  uuid.UUID      `json:"user_id"`
	Outcome Outcome        `json:"outcome"`
	Status  RelationStatus `json:"status"`
}

// SearchResult is a user search hit annotated with the relationship status
type SearchResult struct {
	UserID   uuid.UUID      `json:"user_id"`
	Username string         `json:"username"`
	Status   RelationStatus `json:"status"`
}

// NewFriendResponse builds the list entry from a resolved relationship
func NewFriendResponse(rel Relationship) FriendResponse {
	return FriendResponse{
		UserID:   rel.Other.ID,
		Username: rel.Other.Username,
		Status:   rel.Status,
		Since:    rel.Record.CreatedAt,
	}
}

// NewSearchResult annotates a found user with the viewer's relation to them
func NewSearchResult(u *user.User, status RelationStatus) SearchResult {
	return SearchResult{
		UserID:   u.ID,
		Username: u.Username,
		Status:   status,
	}
}
