package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ptbooth/ptbooth-api/internal/middleware"
	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
	"github.com/ptbooth/ptbooth-api/internal/pkg/response"
	"github.com/ptbooth/ptbooth-api/internal/pkg/validator"
)

var listSortColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"points":    "points",
	"createdAt": "created_at",
}

// Handler handles user HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates user handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /admin/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.Parse(r.URL.Query(), listSortColumns, "created_at")

	users, total, err := h.svc.List(r.Context(), p)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ResponseFromEntity(u))
	}
	response.WithMeta(w, out, p.Meta(total))
}

// Get handles GET /admin/users/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	u, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, ResponseFromEntity(u))
}

// Create handles POST /admin/users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			response.Conflict(w, "Email already registered")
			return
		}
		response.InternalError(w)
		return
	}
	response.Created(w, ResponseFromEntity(u))
}

// Update handles PUT /admin/users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, ErrEmailExists):
			response.Conflict(w, "Email already registered")
		default:
			response.InternalError(w)
		}
		return
	}
	response.OK(w, ResponseFromEntity(u))
}

// Delete handles DELETE /admin/users/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]string{"message": "User deleted"})
}

// AddPoints handles POST /admin/users/{id}/add-points
func (h *Handler) AddPoints(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req AddPointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	adminID := middleware.GetAdminID(r.Context())
	u, err := h.svc.AddPoints(r.Context(), id, req.Points, adminID)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, ErrInvalidPointsDelta):
			response.BadRequest(w, "Points must be a positive integer (minimum 1)")
		default:
			response.InternalError(w)
		}
		return
	}
	response.OK(w, ResponseFromEntity(u))
}
