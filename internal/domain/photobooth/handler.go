package photobooth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
	"github.com/ptbooth/ptbooth-api/internal/pkg/response"
	"github.com/ptbooth/ptbooth-api/internal/pkg/validator"
)

var listSortColumns = map[string]string{
	"name":      "name",
	"status":    "status",
	"createdAt": "created_at",
}

// Handler handles photobooth HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates photobooth handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /admin/photobooth/photobooths
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.Parse(r.URL.Query(), listSortColumns, "created_at")
	status := Status(r.URL.Query().Get("status"))

	booths, total, err := h.svc.List(r.Context(), p, status)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.BadRequest(w, "Invalid status filter")
			return
		}
		response.InternalError(w)
		return
	}

	out := make([]*BoothResponse, 0, len(booths))
	for _, b := range booths {
		out = append(out, ResponseFromEntity(b))
	}
	response.WithMeta(w, out, p.Meta(total))
}

// Get handles GET /admin/photobooth/photobooths/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid photobooth ID")
		return
	}

	b, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.writeBoothError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(b))
}

// Create handles POST /admin/photobooth/photobooths
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBoothRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	b, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		h.writeBoothError(w, err)
		return
	}
	response.Created(w, ResponseFromEntity(b))
}

// Update handles PUT /admin/photobooth/photobooths/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid photobooth ID")
		return
	}

	var req UpdateBoothRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	b, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		h.writeBoothError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(b))
}

// Delete handles DELETE /admin/photobooth/photobooths/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid photobooth ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeBoothError(w, err)
		return
	}
	response.OK(w, map[string]string{"message": "Photobooth deleted"})
}

// UpdateStatus handles PUT /admin/photobooth/photobooths/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid photobooth ID")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	b, err := h.svc.UpdateStatus(r.Context(), id, Status(req.Status))
	if err != nil {
		h.writeBoothError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(b))
}

// ClearSession handles PUT /admin/photobooth/photobooths/{id}/clear-session
func (h *Handler) ClearSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid photobooth ID")
		return
	}

	b, err := h.svc.ClearSession(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNoStuckSession) {
			response.BadRequest(w, "Photobooth has no session to clear")
			return
		}
		h.writeBoothError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(b))
}

func (h *Handler) writeBoothError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBoothNotFound):
		response.NotFound(w, "Photobooth not found")
	case errors.Is(err, ErrNameExists):
		response.Conflict(w, "Photobooth name already in use")
	case errors.Is(err, ErrInvalidStatus):
		response.BadRequest(w, "Invalid photobooth status")
	default:
		response.InternalError(w)
	}
}
