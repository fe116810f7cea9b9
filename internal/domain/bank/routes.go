package bank

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ProfileRoutes returns the /admin/bank-info router
func (h *Handler) ProfileRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.Get)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// DirectoryRoutes returns the /admin/banks router
func (h *Handler) DirectoryRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.ListBanks)

	return r
}
