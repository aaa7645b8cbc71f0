package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fitnest/fitnest-api/internal/domain/user"
	"github.com/fitnest/fitnest-api/internal/middleware"
	"github.com/fitnest/fitnest-api/internal/pkg/imaging"
	"github.com/fitnest/fitnest-api/internal/pkg/response"
	"github.com/fitnest/fitnest-api/internal/pkg/storage"
)

// Handler handles profile and avatar HTTP requests
type Handler struct {
	users         user.Repository
	store         storage.Storage
	processor     *imaging.Processor
	maxAvatarSize int64
}

// NewHandler creates profile handler
func NewHandler(users user.Repository, store storage.Storage, processor *imaging.Processor, maxAvatarSizeMB int) *Handler {
	return &Handler{
		users:         users,
		store:         store,
		processor:     processor,
		maxAvatarSize: int64(maxAvatarSizeMB) << 20,
	}
}

// ProfileResponse is the profile payload with the resolved avatar URL
type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ChoosePresetRequest selects one of the built-in avatars
type ChoosePresetRequest struct {
	PresetID int `json:"preset_id"`
}

// AvatarOption is a preset annotated with its public URL
type AvatarOption struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

func (h *Handler) profileResponse(u *user.User) ProfileResponse {
	resp := ProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
	if u.HasAvatar() {
		resp.AvatarURL = h.store.GetURL(u.AvatarKey.String)
	}
	return resp
}

// Get handles GET /profile
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to load profile")
		response.InternalError(w)
		return
	}
	if u == nil {
		response.NotFound(w, "User not found")
		return
	}

	response.OK(w, h.profileResponse(u))
}

// ListAvatars handles GET /profile/avatars — the built-in choices
func (h *Handler) ListAvatars(w http.ResponseWriter, r *http.Request) {
	options := make([]AvatarOption, 0, len(Presets()))
	for _, preset := range Presets() {
		options = append(options, AvatarOption{ID: preset.ID, URL: h.store.GetURL(preset.Key)})
	}
	response.OK(w, options)
}

// ChoosePreset handles POST /profile/avatar/preset
func (h *Handler) ChoosePreset(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req ChoosePresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	preset := PresetByID(req.PresetID)
	if preset == nil {
		response.NotFound(w, "Avatar not found")
		return
	}

	if err := h.users.UpdateAvatarKey(r.Context(), userID, preset.Key); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to set preset avatar")
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"avatar_url": h.store.GetURL(preset.Key)})
}

// UploadAvatar handles POST /profile/avatar (multipart, field "avatar")
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := r.ParseMultipartForm(h.maxAvatarSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		response.BadRequest(w, "Avatar file is required")
		return
	}
	defer file.Close()

	if !imaging.ValidateType(header.Filename) {
		response.BadRequest(w, "Unsupported image type")
		return
	}
	if !imaging.ValidateSize(header.Size, h.maxAvatarSize) {
		response.BadRequest(w, "Image is too large")
		return
	}

	processed, err := h.processor.Process(file)
	if err != nil {
		response.BadRequest(w, "Failed to process image")
		return
	}

	key := fmt.Sprintf("avatars/%s%s", userID, imaging.Ext(processed.ContentType))
	if err := h.store.Put(r.Context(), key, bytes.NewReader(processed.Data), processed.ContentType); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to store avatar")
		response.InternalError(w)
		return
	}

	if err := h.users.UpdateAvatarKey(r.Context(), userID, key); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to update avatar key")
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"avatar_url": h.store.GetURL(key)})
}

// Routes returns profile router (all routes require auth)
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.Get)
	r.Get("/avatars", h.ListAvatars)
	r.Post("/avatar", h.UploadAvatar)
	r.Post("/avatar/preset", h.ChoosePreset)

	return r
}
