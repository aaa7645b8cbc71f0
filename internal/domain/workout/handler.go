package workout

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

// Handler handles workout HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates workout handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// AddRequest for logging a workout
type AddRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	MuscleGroup     string `json:"muscle_group" validate:"required,muscle_group"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=1,max=1440"`
	Sets            int    `json:"sets" validate:"required,min=1,max=100"`
	Reps            int    `json:"reps" validate:"required,min=1,max=1000"`
	Description     string `json:"description" validate:"max=2000"`
}

// List handles GET /workouts
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	workouts, err := h.repo.ListByUser(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list workouts")
		response.InternalError(w)
		return
	}
	if workouts == nil {
		workouts = []*Workout{}
	}

	response.OK(w, workouts)
}

// Add handles POST /workouts
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

	workout := &Workout{
		UserID:          userID,
		Name:            req.Name,
		MuscleGroup:     MuscleGroup(req.MuscleGroup),
		DurationMinutes: req.DurationMinutes,
		Sets:            req.Sets,
		Reps:            req.Reps,
		Description:     req.Description,
	}
	if err := h.repo.Create(r.Context(), workout); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create workout")
		response.InternalError(w)
		return
	}

	response.Created(w, workout)
}

// Delete handles DELETE /workouts/{workoutID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	workoutID, err := uuid.Parse(chi.URLParam(r, "workoutID"))
	if err != nil {
		response.BadRequest(w, "Invalid workout ID")
		return
	}

	workout, err := h.repo.GetByID(r.Context(), workoutID)
	if err != nil {
		log.Error().Err(err).Str("workout_id", workoutID.String()).Msg("failed to load workout")
		response.InternalError(w)
		return
	}
	if workout == nil || workout.UserID != userID {
		response.NotFound(w, "Workout not found")
		return
	}

	if err := h.repo.Delete(r.Context(), workoutID); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			response.NotFound(w, "Workout not found")
			return
		}
		log.Error().Err(err).Str("workout_id", workoutID.String()).Msg("failed to delete workout")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// Routes returns workout router (all routes require auth)
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Post("/", h.Add)
	r.Delete("/{workoutID}", h.Delete)

	return r
}
