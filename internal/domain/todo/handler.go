package todo

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fitnest/fitnest-api/internal/middleware"
	"github.com/fitnest/fitnest-api/internal/pkg/response"
	"github.com/fitnest/fitnest-api/internal/pkg/validator"
)

// Handler handles todo HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates todo handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// AddRequest for creating a todo
type AddRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

// List handles GET /todos
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	todos, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list todos")
		response.InternalError(w)
		return
	}
	if todos == nil {
		todos = []*Todo{}
	}

	response.OK(w, todos)
}

// Add handles POST /todos
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	todo := &Todo{UserID: userID, Title: req.Title}
	if err := h.repo.Create(r.Context(), todo); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create todo")
		response.InternalError(w)
		return
	}

	response.Created(w, todo)
}

// Toggle handles POST /todos/{todoID}/toggle
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	todoID, err := uuid.Parse(chi.URLParam(r, "todoID"))
	if err != nil {
		response.BadRequest(w, "Invalid todo ID")
		return
	}

	todo, err := h.loadOwned(w, r, userID, todoID)
	if todo == nil || err != nil {
		return
	}

	next := !todo.Complete
	if err := h.repo.SetComplete(r.Context(), todoID, next); err != nil {
		if errors.Is(err, ErrTodoNotFound) {
			response.NotFound(w, "Todo not found")
			return
		}
		log.Error().Err(err).Str("todo_id", todoID.String()).Msg("failed to toggle todo")
		response.InternalError(w)
		return
	}

	todo.Complete = next
	response.OK(w, todo)
}

// Delete handles DELETE /todos/{todoID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	todoID, err := uuid.Parse(chi.URLParam(r, "todoID"))
	if err != nil {
		response.BadRequest(w, "Invalid todo ID")
		return
	}

	todo, err := h.loadOwned(w, r, userID, todoID)
	if todo == nil || err != nil {
		return
	}

	if err := h.repo.Delete(r.Context(), todoID); err != nil {
		if errors.Is(err, ErrTodoNotFound) {
			response.NotFound(w, "Todo not found")
			return
		}
		log.Error().Err(err).Str("todo_id", todoID.String()).Msg("failed to delete todo")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// loadOwned fetches the todo and enforces ownership, writing the error
// response itself when the todo is missing or foreign.
func (h *Handler) loadOwned(w http.ResponseWriter, r *http.Request, userID, todoID uuid.UUID) (*Todo, error) {
	todo, err := h.repo.GetByID(r.Context(), todoID)
	if err != nil {
		log.Error().Err(err).Str("todo_id", todoID.String()).Msg("failed to load todo")
		response.InternalError(w)
		return nil, err
	}
	if todo == nil || todo.UserID != userID {
		// Foreign todos are indistinguishable from missing ones
		response.NotFound(w, "Todo not found")
		return nil, nil
	}
	return todo, nil
}

// Routes returns todo router (all routes require auth)
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Post("/", h.Add)
	r.Post("/{todoID}/toggle", h.Toggle)
	r.Delete("/{todoID}", h.Delete)

	return r
}
