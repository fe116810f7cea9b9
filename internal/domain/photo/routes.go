package photo

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AdminRoutes returns the admin photo router
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Put("/bulk", h.BulkUpdate)
	r.Delete("/bulk", h.BulkDelete)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// KioskRoutes returns the public kiosk upload/attach router
func (h *Handler) KioskRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/upload-image", h.Upload)
	r.Post("/sessions/{id}/photos", h.Attach)

	return r
}
