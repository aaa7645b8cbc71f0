package friendship

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns friendship router (all routes require auth)
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Get("/search", h.Search)
	r.Get("/{userID}/status", h.Status)
	r.Post("/{userID}", h.Add)
	r.Delete("/{userID}", h.Remove)

	return r
}
