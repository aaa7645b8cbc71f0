package note

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fitnest/fitnest-api/internal/middleware"
	"github.com/fitnest/fitnest-api/internal/pkg/response"
	"github.com/fitnest/fitnest-api/internal/pkg/validator"
)

// 1 MB is plenty for a markdown file
const maxImportSize = 1 << 20

// Handler handles note HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates note handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ShareRequest for sharing a note with a friend
type ShareRequest struct {
	TargetUserID string `json:"target_user_id" validate:"required,uuid"`
}

// Import handles POST /notes/import (multipart, field "file")
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "File is required")
		return
	}
	defer file.Close()

	// Read one byte past the limit to tell oversized apart from exactly-at-limit
	data, err := io.ReadAll(io.LimitReader(file, maxImportSize+1))
	if err != nil {
		response.BadRequest(w, "Failed to read file")
		return
	}
	if len(data) > maxImportSize {
		response.BadRequest(w, "File is too large")
		return
	}

	note, err := h.service.Import(r.Context(), userID, header.Filename, data)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFile) {
			response.BadRequest(w, "Only .md and .txt files can be imported")
			return
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to import note")
		response.InternalError(w)
		return
	}

	response.Created(w, note)
}

// List handles GET /notes
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	notes, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list notes")
		response.InternalError(w)
		return
	}
	if notes == nil {
		notes = []*Note{}
	}

	response.OK(w, notes)
}

// Get handles GET /notes/{noteID} — returns the note with rendered HTML
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	noteID, ok := h.parseID(w, r, "noteID")
	if !ok {
		return
	}

	rendered, err := h.service.Get(r.Context(), userID, noteID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, rendered)
}

// Search handles GET /notes/search?q=
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		response.BadRequest(w, "Query parameter 'q' is required")
		return
	}

	notes, err := h.service.Search(r.Context(), userID, q)
	if err != nil {
		log.Error().Err(err).Str("query", q).Msg("note search failed")
		response.InternalError(w)
		return
	}
	if notes == nil {
		notes = []*Note{}
	}

	response.OK(w, notes)
}

// Delete handles DELETE /notes/{noteID}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	noteID, ok := h.parseID(w, r, "noteID")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, noteID); err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

// ExportPDF handles GET /notes/{noteID}/pdf — streams the PDF download
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	noteID, ok := h.parseID(w, r, "noteID")
	if !ok {
		return
	}

	// Buffer so a render failure can still produce a JSON error
	var buf bytes.Buffer
	filename, err := h.service.ExportPDF(r.Context(), userID, noteID, &buf)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Share handles POST /notes/{noteID}/share
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	noteID, ok := h.parseID(w, r, "noteID")
	if !ok {
		return
	}

	var req ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	targetID, err := uuid.Parse(req.TargetUserID)
	if err != nil {
		response.BadRequest(w, "Invalid target user ID")
		return
	}

	share, err := h.service.ShareNote(r.Context(), userID, noteID, targetID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, share)
}

// ListShares handles GET /notes/shares — shares given and received
func (h *Handler) ListShares(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	shares, err := h.service.ListShares(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list shares")
		response.InternalError(w)
		return
	}
	if shares == nil {
		shares = []*ShareView{}
	}

	response.OK(w, shares)
}

// CopyShared handles POST /notes/shares/{shareID}/copy
func (h *Handler) CopyShared(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	shareID, ok := h.parseID(w, r, "shareID")
	if !ok {
		return
	}

	copied, err := h.service.CopyShared(r.Context(), userID, shareID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, copied)
}

// CancelShare handles DELETE /notes/shares/{shareID}
func (h *Handler) CancelShare(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	shareID, ok := h.parseID(w, r, "shareID")
	if !ok {
		return
	}

	if err := h.service.CancelShare(r.Context(), userID, shareID); err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		response.BadRequest(w, "Invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoteNotFound):
		response.NotFound(w, "Note not found")
	case errors.Is(err, ErrShareNotFound):
		response.NotFound(w, "Share not found")
	case errors.Is(err, ErrNotFriends):
		response.Forbidden(w, "Notes can only be shared with friends")
	case errors.Is(err, ErrNotParticipant):
		response.Forbidden(w, "Not a participant of this share")
	default:
		log.Error().Err(err).Msg("note operation failed")
		response.InternalError(w)
	}
}

// Routes returns note router (all routes require auth)
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Post("/import", h.Import)
	r.Get("/search", h.Search)
	r.Get("/shares", h.ListShares)
	r.Post("/shares/{shareID}/copy", h.CopyShared)
	r.Delete("/shares/{shareID}", h.CancelShare)
	r.Get("/{noteID}", h.Get)
	r.Delete("/{noteID}", h.Delete)
	r.Get("/{noteID}/pdf", h.ExportPDF)
	r.Post("/{noteID}/share", h.Share)

	return r
}
