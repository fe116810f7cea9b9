package stats

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ptbooth/ptbooth-api/internal/pkg/response"
)

// SessionReaper expires overdue sessions on demand
type SessionReaper interface {
	ExpireOverdue(ctx context.Context, now time.Time) (int, error)
}

// Handler handles stats HTTP requests
type Handler struct {
	svc    *Service
	reaper SessionReaper
}

// NewHandler creates stats handler
func NewHandler(svc *Service, reaper SessionReaper) *Handler {
	return &Handler{svc: svc, reaper: reaper}
}

// Overview handles GET /admin/photobooth/stats
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Overview(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, overview)
}

// Realtime handles GET /admin/photobooth/stats/realtime
func (h *Handler) Realtime(w http.ResponseWriter, r *http.Request) {
	rt, err := h.svc.Realtime(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, rt)
}

// SessionsChart handles GET /admin/photobooth/stats/sessions-chart?days=N
func (h *Handler) SessionsChart(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	points, err := h.svc.SessionsChart(r.Context(), days)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, points)
}

// Utilization handles GET /admin/photobooth/stats/utilization
func (h *Handler) Utilization(w http.ResponseWriter, r *http.Request) {
	util, err := h.svc.Utilization(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, util)
}

// CleanupExpiredSessions handles POST /admin/photobooth/cleanup/expired-sessions
func (h *Handler) CleanupExpiredSessions(w http.ResponseWriter, r *http.Request) {
	cleaned, err := h.reaper.ExpireOverdue(r.Context(), time.Now())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, map[string]int{"cleanedCount": cleaned})
}
