package auth

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns the public auth router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	return r
}
