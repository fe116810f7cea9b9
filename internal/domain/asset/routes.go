package asset

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AdminRoutes returns the admin asset router
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Post("/", h.Upload)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// PublicRoutes returns the kiosk-facing asset router
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.PublicList)
	r.Get("/frames", h.PublicFrames)
	r.Get("/filters", h.PublicFilters)
	r.Get("/stickers", h.PublicStickers)

	return r
}
