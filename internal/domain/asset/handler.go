package asset

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
	"github.com/ptbooth/ptbooth-api/internal/pkg/response"
	"github.com/ptbooth/ptbooth-api/internal/pkg/storage"
	"github.com/ptbooth/ptbooth-api/internal/pkg/validator"
)

var listSortColumns = map[string]string{
	"name":      "name",
	"type":      "type",
	"createdAt": "created_at",
}

const maxMultipartMemory = 6 << 20

// Handler handles asset HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates asset handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Upload handles POST /admin/assets
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

	req := UploadAssetRequest{
		Name:       r.FormValue("name"),
		Type:       r.FormValue("type"),
		FilterType: r.FormValue("filterType"),
		Scale:      formFloat(r, "scale"),
		OffsetY:    formFloat(r, "offsetY"),
		AnchorIdx:  formInt32(r, "anchorIdx"),
		LeftIdx:    formInt32(r, "leftIdx"),
		RightIdx:   formInt32(r, "rightIdx"),
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	a, err := h.svc.Upload(r.Context(), &req, file)
	if err != nil {
		h.writeAssetError(w, err)
		return
	}
	response.Created(w, ResponseFromEntity(a))
}

// List handles GET /admin/assets
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	p := pagination.Parse(r.URL.Query(), listSortColumns, "created_at")
	typ := Type(r.URL.Query().Get("type"))

	assets, total, err := h.svc.List(r.Context(), p, typ)
	if err != nil {
		h.writeAssetError(w, err)
		return
	}

	out := make([]*AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, ResponseFromEntity(a))
	}
	response.WithMeta(w, out, p.Meta(total))
}

// Get handles GET /admin/assets/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid asset ID")
		return
	}

	a, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.writeAssetError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(a))
}

// Update handles PUT /admin/assets/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid asset ID")
		return
	}

	var req UpdateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	a, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		h.writeAssetError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(a))
}

// Delete handles DELETE /admin/assets/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid asset ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeAssetError(w, err)
		return
	}
	response.OK(w, map[string]string{"message": "Asset deleted"})
}

// PublicList handles GET /assets
func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	h.listActive(w, r, "")
}

// PublicFrames handles GET /assets/frames
func (h *Handler) PublicFrames(w http.ResponseWriter, r *http.Request) {
	h.listActive(w, r, TypeFrame)
}

// PublicFilters handles GET /assets/filters
func (h *Handler) PublicFilters(w http.ResponseWriter, r *http.Request) {
	h.listActive(w, r, TypeFilter)
}

// PublicStickers handles GET /assets/stickers
func (h *Handler) PublicStickers(w http.ResponseWriter, r *http.Request) {
	h.listActive(w, r, TypeSticker)
}

func (h *Handler) listActive(w http.ResponseWriter, r *http.Request, typ Type) {
	assets, err := h.svc.ListActive(r.Context(), typ)
	if err != nil {
		h.writeAssetError(w, err)
		return
	}

	out := make([]*AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, ResponseFromEntity(a))
	}
	response.OK(w, out)
}

func formFloat(r *http.Request, field string) *float64 {
	raw := r.FormValue(field)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func formInt32(r *http.Request, field string) *int32 {
	raw := r.FormValue(field)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil
	}
	i := int32(v)
	return &i
}

func (h *Handler) writeAssetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAssetNotFound):
		response.NotFound(w, "Asset not found")
	case errors.Is(err, ErrInvalidType):
		response.BadRequest(w, "Invalid asset type")
	case errors.Is(err, storage.ErrFileTooLarge):
		response.BadRequest(w, "File exceeds maximum size")
	case errors.Is(err, storage.ErrInvalidMimeType):
		response.BadRequest(w, "File type not allowed")
	case errors.Is(err, storage.ErrEmptyFile):
		response.BadRequest(w, "File is empty")
	default:
		response.InternalError(w)
	}
}
