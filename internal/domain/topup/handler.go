package topup

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ptbooth/ptbooth-api/internal/domain/user"
	"github.com/ptbooth/ptbooth-api/internal/middleware"
	"github.com/ptbooth/ptbooth-api/internal/pkg/response"
	"github.com/ptbooth/ptbooth-api/internal/pkg/sepay"
	"github.com/ptbooth/ptbooth-api/internal/pkg/validator"
)

// Handler handles top-up HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates top-up handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Intent handles POST /admin/users/{id}/topup/intent
func (h *Handler) Intent(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req TopUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	intent, err := h.svc.BuildIntent(r.Context(), userID, &req)
	if err != nil {
		h.writeTopUpError(w, err)
		return
	}
	response.OK(w, intent)
}

// Submit handles POST /admin/users/{id}/topup
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req TopUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	adminID := middleware.GetAdminID(r.Context())
	u, err := h.svc.Submit(r.Context(), adminID, userID, &req)
	if err != nil {
		h.writeTopUpError(w, err)
		return
	}
	response.OK(w, user.ResponseFromEntity(u))
}

func (h *Handler) writeTopUpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, ErrInvalidMode):
		response.BadRequest(w, "Top-up mode must be manual or qr")
	case errors.Is(err, ErrInvalidPoints):
		response.BadRequest(w, "Points must be a positive integer (minimum 1)")
	case errors.Is(err, ErrInvalidAmount):
		response.BadRequest(w, "Amount must be greater than zero")
	case errors.Is(err, ErrAmountTooSmall):
		response.BadRequest(w, "Amount is too small to credit any points")
	case errors.Is(err, ErrBankNotConfigured):
		response.BadRequest(w, "Bank account is not configured; configure bank info or use manual mode")
	case errors.Is(err, sepay.ErrMissingPaymentCode):
		response.BadRequest(w, "Cannot generate QR: user has no payment code")
	case errors.Is(err, sepay.ErrMissingAccount):
		response.BadRequest(w, "Cannot generate QR: bank account is not configured")
	case errors.Is(err, ErrSubmissionInFlight):
		response.Conflict(w, "A top-up for this user is already being submitted")
	default:
		response.InternalError(w)
	}
}
