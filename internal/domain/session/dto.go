package session

import (
	"net/url"
	"time"

	"github.com/google/uuid"
)

// CreateSessionRequest for POST /admin/photobooth/sessions
type CreateSessionRequest struct {
	PhotoboothID string `json:"photoboothId" validate:"required,uuid"`
	UserID       string `json:"userId" validate:"omitempty,uuid"`
	MaxPhotos    int    `json:"maxPhotos" validate:"omitempty,gte=1,lte=50"`
}

// Filter narrows session listings
type Filter struct {
	Status       Status
	PhotoboothID uuid.NullUUID
	UserID       uuid.NullUUID
	From         time.Time
	To           time.Time
}

// ParseFilter reads filter params from the query string. Unparseable values
// are ignored rather than rejected, matching how the dashboard sends them.
func ParseFilter(query url.Values) Filter {
	f := Filter{Status: Status(query.Get("status"))}
	if id, err := uuid.Parse(query.Get("photoboothId")); err == nil {
		f.PhotoboothID = uuid.NullUUID{UUID: id, Valid: true}
	}
	if id, err := uuid.Parse(query.Get("userId")); err == nil {
		f.UserID = uuid.NullUUID{UUID: id, Valid: true}
	}
	if t, err := time.Parse(time.RFC3339, query.Get("from")); err == nil {
		f.From = t
	}
	if t, err := time.Parse(time.RFC3339, query.Get("to")); err == nil {
		f.To = t
	}
	return f
}

// SessionResponse represents a session in API responses
type SessionResponse struct {
	ID           uuid.UUID  `json:"id"`
	PhotoboothID uuid.UUID  `json:"photoboothId"`
	UserID       *uuid.UUID `json:"userId,omitempty"`
	Status       Status     `json:"status"`
	MaxPhotos    int        `json:"maxPhotos"`
	StartedAt    *string    `json:"startedAt,omitempty"`
	CompletedAt  *string    `json:"completedAt,omitempty"`
	ExpiresAt    string     `json:"expiresAt"`
	CreatedAt    string     `json:"createdAt"`
	UpdatedAt    string     `json:"updatedAt"`
}

// ResponseFromEntity converts entity to response DTO
func ResponseFromEntity(s *Session) *SessionResponse {
	resp := &SessionResponse{
		ID:           s.ID,
		PhotoboothID: s.PhotoboothID,
		Status:       s.Status,
		MaxPhotos:    s.MaxPhotos,
		ExpiresAt:    s.ExpiresAt.Format(time.RFC3339),
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    s.UpdatedAt.Format(time.RFC3339),
	}
	if s.UserID.Valid {
		id := s.UserID.UUID
		resp.UserID = &id
	}
	if s.StartedAt.Valid {
		v := s.StartedAt.Time.Format(time.RFC3339)
		resp.StartedAt = &v
	}
	if s.CompletedAt.Valid {
		v := s.CompletedAt.Time.Format(time.RFC3339)
		resp.CompletedAt = &v
	}
	return resp
}
