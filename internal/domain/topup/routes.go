package topup

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the top-up router, mounted under /admin/users/{id}/topup
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Post("/", h.Submit)
	r.Post("/intent", h.Intent)

	return r
}
