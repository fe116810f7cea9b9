package photobooth

import (
	"time"

	"github.com/google/uuid"
)

// CreateBoothRequest for POST /admin/photobooth/photobooths
type CreateBoothRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Location string `json:"location" validate:"omitempty,max=255"`
}

// UpdateBoothRequest for PUT /admin/photobooth/photobooths/{id}
type UpdateBoothRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	Location *string `json:"location" validate:"omitempty,max=255"`
}

// UpdateStatusRequest for PUT /admin/photobooth/photobooths/{id}/status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,booth_status"`
}

// BoothResponse represents a photobooth in API responses
type BoothResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Location         string     `json:"location,omitempty"`
	Status           Status     `json:"status"`
	CurrentSessionID *uuid.UUID `json:"currentSessionId,omitempty"`
	CreatedAt        string     `json:"createdAt"`
	UpdatedAt        string     `json:"updatedAt"`
}

// ResponseFromEntity converts entity to response DTO
func ResponseFromEntity(b *Photobooth) *BoothResponse {
	resp := &BoothResponse{
		ID:        b.ID,
		Name:      b.Name,
		Location:  b.Location.String,
		Status:    b.Status,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.Format(time.RFC3339),
	}
	if b.CurrentSessionID.Valid {
		id := b.CurrentSessionID.UUID
		resp.CurrentSessionID = &id
	}
	return resp
}
