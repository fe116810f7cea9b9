package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the admin session router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)
	r.Put("/{id}/start", h.Start)
	r.Put("/{id}/complete", h.Complete)
	r.Put("/{id}/cancel", h.Cancel)
	r.Post("/{id}/start-capture", h.StartCapture)

	return r
}
