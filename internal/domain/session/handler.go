package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ptbooth/ptbooth-api/internal/domain/photobooth"
	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
	"github.com/ptbooth/ptbooth-api/internal/pkg/response"
	"github.com/ptbooth/ptbooth-api/internal/pkg/validator"
)

var listSortColumns = map[string]string{
	"status":    "status",
	"createdAt": "created_at",
	"expiresAt": "expires_at",
}

// Handler handles session HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates session handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /admin/photobooth/sessions
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.Parse(r.URL.Query(), listSortColumns, "created_at")
	f := ParseFilter(r.URL.Query())

	sessions, total, err := h.svc.List(r.Context(), p, f)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.BadRequest(w, "Invalid status filter")
			return
		}
		response.InternalError(w)
		return
	}

	out := make([]*SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, ResponseFromEntity(s))
	}
	response.WithMeta(w, out, p.Meta(total))
}

// Get handles GET /admin/photobooth/sessions/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid session ID")
		return
	}

	s, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(s))
}

// Create handles POST /admin/photobooth/sessions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	s, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	response.Created(w, ResponseFromEntity(s))
}

// Delete handles DELETE /admin/photobooth/sessions/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid session ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeSessionError(w, err)
		return
	}
	response.OK(w, map[string]string{"message": "Session deleted"})
}

// Start handles PUT /admin/photobooth/sessions/{id}/start
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Start)
}

// Complete handles PUT /admin/photobooth/sessions/{id}/complete
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Complete)
}

// Cancel handles PUT /admin/photobooth/sessions/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.CancelSession)
}

// StartCapture handles POST /admin/photobooth/sessions/{id}/start-capture
func (h *Handler) StartCapture(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid session ID")
		return
	}

	if err := h.svc.StartCapture(r.Context(), id); err != nil {
		h.writeSessionError(w, err)
		return
	}
	response.OK(w, map[string]string{"message": "Capture requested"})
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, id uuid.UUID) (*Session, error)) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid session ID")
		return
	}

	s, err := fn(r.Context(), id)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(s))
}

func (h *Handler) writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.NotFound(w, "Session not found")
	case errors.Is(err, photobooth.ErrBoothNotFound):
		response.NotFound(w, "Photobooth not found")
	case errors.Is(err, ErrBoothUnavailable):
		response.Conflict(w, "Photobooth is not available")
	case errors.Is(err, ErrInvalidTransition):
		response.Conflict(w, "Session status transition not allowed")
	case errors.Is(err, ErrSessionNotActive):
		response.BadRequest(w, "Session is not active")
	case errors.Is(err, ErrInvalidStatus):
		response.BadRequest(w, "Invalid session status")
	default:
		response.InternalError(w)
	}
}
