package bank

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ptbooth/ptbooth-api/internal/pkg/response"
	"github.com/ptbooth/ptbooth-api/internal/pkg/validator"
)

// Handler handles bank HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates bank handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListBanks handles GET /admin/banks
func (h *Handler) ListBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.svc.ListBanks(r.Context())
	if err != nil {
		response.BadGateway(w, "Bank directory unavailable")
		return
	}
	response.OK(w, banks)
}

// Get handles GET /admin/bank-info
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Get(r.Context())
	if err != nil {
		if errors.Is(err, ErrBankInfoNotFound) {
			response.NotFound(w, "Bank info not configured")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, ResponseFromEntity(b))
}

// Create handles POST /admin/bank-info
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertBankInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	b, err := h.svc.Upsert(r.Context(), &req)
	if err != nil {
		h.writeProfileError(w, err)
		return
	}
	response.Created(w, ResponseFromEntity(b))
}

// Update handles PUT /admin/bank-info/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid bank info ID")
		return
	}

	var req UpsertBankInfoRequest
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
		h.writeProfileError(w, err)
		return
	}
	response.OK(w, ResponseFromEntity(b))
}

// Delete handles DELETE /admin/bank-info/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid bank info ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrBankInfoNotFound) {
			response.NotFound(w, "Bank info not configured")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]string{"message": "Bank info deleted"})
}

func (h *Handler) writeProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBankInfoNotFound):
		response.NotFound(w, "Bank info not configured")
	case errors.Is(err, ErrBankRequired):
		response.BadRequest(w, "Bank is required")
	case errors.Is(err, ErrAccountNumberLength):
		response.BadRequest(w, "Account number must be at least 8 characters")
	case errors.Is(err, ErrHolderNameLength):
		response.BadRequest(w, "Account holder name must be at least 2 characters")
	default:
		response.InternalError(w)
	}
}
