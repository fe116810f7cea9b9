package photo

import (
	"time"

	"github.com/google/uuid"
)

// AttachPhotoRequest for POST /photobooth/sessions/{id}/photos
type AttachPhotoRequest struct {
	PhotoID string `json:"photoId" validate:"required,uuid"`
}

// UpdatePhotoRequest for PUT /admin/photobooth/photos/{id}
type UpdatePhotoRequest struct {
	Processed *bool `json:"processed" validate:"required"`
}

// BulkUpdateRequest for PUT /admin/photobooth/photos/bulk
type BulkUpdateRequest struct {
	IDs       []string `json:"ids" validate:"required,min=1,dive,uuid"`
	Processed bool     `json:"processed"`
}

// BulkDeleteRequest for DELETE /admin/photobooth/photos/bulk
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

// PhotoResponse represents a photo in API responses
type PhotoResponse struct {
	ID           uuid.UUID  `json:"id"`
	SessionID    *uuid.UUID `json:"sessionId,omitempty"`
	ImageURL     string     `json:"imageUrl"`
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	Processed    bool       `json:"processed"`
	CreatedAt    string     `json:"createdAt"`
	UpdatedAt    string     `json:"updatedAt"`
}

// ResponseFromEntity converts entity to response DTO
func ResponseFromEntity(p *Photo) *PhotoResponse {
	resp := &PhotoResponse{
		ID:           p.ID,
		ImageURL:     p.ImageURL,
		ThumbnailURL: p.ThumbnailURL.String,
		Width:        p.Width,
		Height:       p.Height,
		Processed:    p.Processed,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
	if p.SessionID.Valid {
		id := p.SessionID.UUID
		resp.SessionID = &id
	}
	return resp
}
