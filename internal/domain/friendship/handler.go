package friendship

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fitnest/fitnest-api/internal/domain/user"
	"github.com/fitnest/fitnest-api/internal/middleware"
	"github.com/fitnest/fitnest-api/internal/pkg/response"
)

const searchLimit = 20

// Handler handles friendship HTTP requests
type Handler struct {
	service *Service
	users   user.Repository
}

// NewHandler creates friendship handler
func NewHandler(service *Service, users user.Repository) *Handler {
	return &Handler{service: service, users: users}
}

// List handles GET /friends
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	relationships, err := h.service.ListRelationships(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list relationships")
		response.InternalError(w)
		return
	}

	result := make([]FriendResponse, 0, len(relationships))
	for _, rel := range relationships {
		result = append(result, NewFriendResponse(rel))
	}

	response.OK(w, result)
}

// Search handles GET /friends/search?q=
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		response.BadRequest(w, "Query parameter 'q' is required")
		return
	}

	found, err := h.users.SearchByUsername(r.Context(), q, userID, searchLimit)
	if err != nil {
		log.Error().Err(err).Str("query", q).Msg("user search failed")
		response.InternalError(w)
		return
	}

	results := make([]SearchResult, 0, len(found))
	for _, u := range found {
		status, _, err := h.service.ResolveStatus(r.Context(), userID, u.ID)
		if err != nil {
			log.Error().Err(err).Str("other_id", u.ID.String()).Msg("failed to resolve status for search hit")
			response.InternalError(w)
			return
		}
		results = append(results, NewSearchResult(u, status))
	}

	response.OK(w, results)
}

// Status handles GET /friends/{userID}/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())

	targetID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	status, _, err := h.service.ResolveStatus(r.Context(), actorID, targetID)
	if err != nil {
		h.writeError(w, err, actorID, targetID)
		return
	}

	response.OK(w, StatusResponse{UserID: targetID, Status: status})
}

// Add handles POST /friends/{userID} — send a request or approve a pending one
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())

	targetID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	outcome, _, err := h.service.AddFriend(r.Context(), actorID, targetID)
	if err != nil {
		h.writeError(w, err, actorID, targetID)
		return
	}

	status, _, err := h.service.ResolveStatus(r.Context(), actorID, targetID)
	if err != nil {
		h.writeError(w, err, actorID, targetID)
		return
	}

	resp := AddResponse{UserID: targetID, Outcome: outcome, Status: status}
	if outcome == OutcomeRequested {
		response.Created(w, resp)
		return
	}
	response.OK(w, resp)
}

// Remove handles DELETE /friends/{userID} — unfriend, unsend, or reject
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())

	targetID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if _, err := h.service.RemoveFriend(r.Context(), actorID, targetID); err != nil {
		h.writeError(w, err, actorID, targetID)
		return
	}

	response.NoContent(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error, actorID, targetID uuid.UUID) {
	switch {
	case errors.Is(err, ErrSelfRelationship):
		response.BadRequest(w, "Cannot perform this action on yourself")
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, ErrUnexpectedState):
		log.Error().Err(err).
			Str("actor_id", actorID.String()).
			Str("target_id", targetID.String()).
			Msg("friendship record in unexpected state")
		response.NotFound(w, "Relationship not found")
	default:
		log.Error().Err(err).
			Str("actor_id", actorID.String()).
			Str("target_id", targetID.String()).
			Msg("friendship operation failed")
		response.InternalError(w)
	}
}
