package asset

import (
	"time"

	"github.com/google/uuid"
)

// UploadAssetRequest carries the multipart form fields next to the file.
// The placement fields only apply to filter assets.
type UploadAssetRequest struct {
	Name       string   `json:"name" validate:"required,min=1,max=100"`
	Type       string   `json:"type" validate:"required,asset_type"`
	FilterType string   `json:"filterType" validate:"omitempty,max=50"`
	Scale      *float64 `json:"scale" validate:"omitempty,gt=0"`
	OffsetY    *float64 `json:"offsetY"`
	AnchorIdx  *int32   `json:"anchorIdx" validate:"omitempty,gte=0"`
	LeftIdx    *int32   `json:"leftIdx" validate:"omitempty,gte=0"`
	RightIdx   *int32   `json:"rightIdx" validate:"omitempty,gte=0"`
}

// UpdateAssetRequest for PUT /admin/assets/{id}
type UpdateAssetRequest struct {
	Name       *string  `json:"name" validate:"omitempty,min=1,max=100"`
	FilterType *string  `json:"filterType" validate:"omitempty,max=50"`
	Scale      *float64 `json:"scale" validate:"omitempty,gt=0"`
	OffsetY    *float64 `json:"offsetY"`
	AnchorIdx  *int32   `json:"anchorIdx" validate:"omitempty,gte=0"`
	LeftIdx    *int32   `json:"leftIdx" validate:"omitempty,gte=0"`
	RightIdx   *int32   `json:"rightIdx" validate:"omitempty,gte=0"`
	IsActive   *bool    `json:"isActive"`
}

// AssetResponse represents an asset in API responses
type AssetResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Type       Type      `json:"type"`
	ImageURL   string    `json:"imageUrl"`
	FilterType string    `json:"filterType,omitempty"`
	Scale      *float64  `json:"scale,omitempty"`
	OffsetY    *float64  `json:"offsetY,omitempty"`
	AnchorIdx  *int32    `json:"anchorIdx,omitempty"`
	LeftIdx    *int32    `json:"leftIdx,omitempty"`
	RightIdx   *int32    `json:"rightIdx,omitempty"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  string    `json:"createdAt"`
	UpdatedAt  string    `json:"updatedAt"`
}

// ResponseFromEntity converts entity to response DTO
func ResponseFromEntity(a *Asset) *AssetResponse {
	resp := &AssetResponse{
		ID:         a.ID,
		Name:       a.Name,
		Type:       a.Type,
		ImageURL:   a.ImageURL,
		FilterType: a.FilterType.String,
		IsActive:   a.IsActive,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  a.UpdatedAt.Format(time.RFC3339),
	}
	if a.Scale.Valid {
		v := a.Scale.Float64
		resp.Scale = &v
	}
	if a.OffsetY.Valid {
		v := a.OffsetY.Float64
		resp.OffsetY = &v
	}
	if a.AnchorIdx.Valid {
		v := a.AnchorIdx.Int32
		resp.AnchorIdx = &v
	}
	if a.LeftIdx.Valid {
		v := a.LeftIdx.Int32
		resp.LeftIdx = &v
	}
	if a.RightIdx.Valid {
		v := a.RightIdx.Int32
		resp.RightIdx = &v
	}
	return resp
}
