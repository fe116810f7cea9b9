package photobooth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the admin photobooth router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Put("/{id}/status", h.UpdateStatus)
	r.Put("/{id}/clear-session", h.ClearSession)

	return r
}
