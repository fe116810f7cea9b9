package photo

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ptbooth/ptbooth-api/internal/domain/session"
	"github.com/ptbooth/ptbooth-api/internal/pkg/imaging"
	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
	"github.com/ptbooth/ptbooth-api/internal/pkg/response"
	"github.com/ptbooth/ptbooth-api/internal/pkg/storage"
	"github.com/ptbooth/ptbooth-api/internal/pkg/validator"
)

var listSortColumns = map[string]string{
	"createdAt": "created_at",
	"processed": "processed",
}

// multipart form memory cap; bigger files spill to disk before validation
const maxMultipartMemory = 12 << 20

// Handler handles photo HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates photo handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Upload handles POST /photobooth/upload-image
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "Missing image file")
		return
	}
	defer file.Close()

	p, err := h.svc.Upload(r.Context(), file)
	if err != nil {
		h.writePhotoError(w, err)
		return
	}
	response.Created(w, ResponseFromEntity(p))
}

// Attach handles POST /photobooth/sessions/{id}/photos
func (h *Handler) Attach(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid session ID")
		return
	}

	var req AttachPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}
	photoID, _ := uuid.Parse(req.PhotoID)

	p, err := h.svc.Attach(r.Context(), sessionID, photoID)
	if err != nil {
		h.writePhotoError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(p))
}

// List handles GET /admin/photobooth/photos
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.Parse(r.URL.Query(), listSortColumns, "created_at")

	var sessionID uuid.NullUUID
	if id, err := uuid.Parse(r.URL.Query().Get("sessionId")); err == nil {
		sessionID = uuid.NullUUID{UUID: id, Valid: true}
	}
	var processed *bool
	switch r.URL.Query().Get("processed") {
	case "true":
		v := true
		processed = &v
	case "false":
		v := false
		processed = &v
	}

	photos, total, err := h.svc.List(r.Context(), p, sessionID, processed)
	if err != nil {
		response.InternalError(w)
		return
	}

	out := make([]*PhotoResponse, 0, len(photos))
	for _, ph := range photos {
		out = append(out, ResponseFromEntity(ph))
	}
	response.WithMeta(w, out, p.Meta(total))
}

// Get handles GET /admin/photobooth/photos/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid photo ID")
		return
	}

	p, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.writePhotoError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(p))
}

// Update handles PUT /admin/photobooth/photos/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid photo ID")
		return
	}

	var req UpdatePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if req.Processed == nil {
		response.BadRequest(w, "processed is required")
		return
	}

	p, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		h.writePhotoError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(p))
}

// Delete handles DELETE /admin/photobooth/photos/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid photo ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writePhotoError(w, err)
		return
	}
	response.OK(w, map[string]string{"message": "Photo deleted"})
}

// BulkUpdate handles PUT /admin/photobooth/photos/bulk
func (h *Handler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req BulkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	updated, err := h.svc.BulkUpdateProcessed(r.Context(), parseIDs(req.IDs), req.Processed)
	if err != nil {
		h.writePhotoError(w, err)
		return
	}
	response.OK(w, map[string]int{"updatedCount": updated})
}

// BulkDelete handles DELETE /admin/photobooth/photos/bulk
func (h *Handler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	deleted, err := h.svc.BulkDelete(r.Context(), parseIDs(req.IDs))
	if err != nil {
		h.writePhotoError(w, err)
		return
	}
	response.OK(w, map[string]int{"deletedCount": deleted})
}

func parseIDs(raw []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		if id, err := uuid.Parse(s); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func (h *Handler) writePhotoError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPhotoNotFound):
		response.NotFound(w, "Photo not found")
	case errors.Is(err, session.ErrSessionNotFound):
		response.NotFound(w, "Session not found")
	case errors.Is(err, session.ErrMaxPhotosReached):
		response.Conflict(w, "Session photo limit reached")
	case errors.Is(err, ErrNoPhotoIDs):
		response.BadRequest(w, "No photo IDs given")
	case errors.Is(err, storage.ErrFileTooLarge):
		response.BadRequest(w, "File exceeds maximum size")
	case errors.Is(err, storage.ErrInvalidMimeType):
		response.BadRequest(w, "File type not allowed")
	case errors.Is(err, storage.ErrEmptyFile):
		response.BadRequest(w, "File is empty")
	case errors.Is(err, imaging.ErrUnsupportedImage):
		response.BadRequest(w, "Image could not be decoded")
	default:
		response.InternalError(w)
	}
}
