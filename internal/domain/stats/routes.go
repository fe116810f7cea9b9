package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the admin stats router, mounted under /admin/photobooth
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/stats", h.Overview)
	r.Get("/stats/realtime", h.Realtime)
	r.Get("/stats/sessions-chart", h.SessionsChart)
	r.Get("/stats/utilization", h.Utilization)
	r.Post("/cleanup/expired-sessions", h.CleanupExpiredSessions)

	return r
}
