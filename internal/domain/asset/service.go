package asset

import (
	"context"
	"database/sql"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
	"github.com/ptbooth/ptbooth-api/internal/pkg/storage"
)

// Service handles overlay asset management
type Service struct {
	repo  Repository
	store storage.Storage
}

// NewService creates asset service
func NewService(repo Repository, store storage.Storage) *Service {
	return &Service{repo: repo, store: store}
}

// Upload validates and stores an asset image with its metadata
func (s *Service) Upload(ctx context.Context, req *UploadAssetRequest, file io.Reader) (*Asset, error) {
	typ := Type(req.Type)
	if !typ.IsValid() {
		return nil, ErrInvalidType
	}

	buf, mimeType, err := storage.ValidateAndBuffer(file, storage.CategoryAsset)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	key := "assets/" + string(typ) + "s/" + id.String() + storage.GetExtensionForMime(mimeType)
	if err := s.store.Put(ctx, key, buf, mimeType); err != nil {
		return nil, err
	}

	now := time.Now()
	a := &Asset{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		Type:      typ,
		ImageKey:  key,
		ImageURL:  s.store.GetURL(key),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if typ == TypeFilter {
		a.FilterType = sql.NullString{String: req.FilterType, Valid: req.FilterType != ""}
		if req.Scale != nil {
			a.Scale = sql.NullFloat64{Float64: *req.Scale, Valid: true}
		}
		if req.OffsetY != nil {
			a.OffsetY = sql.NullFloat64{Float64: *req.OffsetY, Valid: true}
		}
		if req.AnchorIdx != nil {
			a.AnchorIdx = sql.NullInt32{Int32: *req.AnchorIdx, Valid: true}
		}
		if req.LeftIdx != nil {
			a.LeftIdx = sql.NullInt32{Int32: *req.LeftIdx, Valid: true}
		}
		if req.RightIdx != nil {
			a.RightIdx = sql.NullInt32{Int32: *req.RightIdx, Valid: true}
		}
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	log.Info().Str("asset_id", id.String()).Str("type", string(typ)).Msg("asset uploaded")
	return a, nil
}

// GetByID returns an asset by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Asset, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAssetNotFound
	}
	return a, nil
}

// List returns a page of assets for the admin catalogue
func (s *Service) List(ctx context.Context, p pagination.Params, typ Type) ([]*Asset, int, error) {
	if typ != "" && !typ.IsValid() {
		return nil, 0, ErrInvalidType
	}
	return s.repo.List(ctx, p, typ, false)
}

// ListActive returns active assets for kiosks, optionally by type
func (s *Service) ListActive(ctx context.Context, typ Type) ([]*Asset, error) {
	if typ != "" && !typ.IsValid() {
		return nil, ErrInvalidType
	}
	return s.repo.ListActive(ctx, typ)
}

// Update modifies asset metadata and placement properties
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateAssetRequest) (*Asset, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.FilterType != nil {
		a.FilterType = sql.NullString{String: *req.FilterType, Valid: *req.FilterType != ""}
	}
	if req.Scale != nil {
		a.Scale = sql.NullFloat64{Float64: *req.Scale, Valid: true}
	}
	if req.OffsetY != nil {
		a.OffsetY = sql.NullFloat64{Float64: *req.OffsetY, Valid: true}
	}
	if req.AnchorIdx != nil {
		a.AnchorIdx = sql.NullInt32{Int32: *req.AnchorIdx, Valid: true}
	}
	if req.LeftIdx != nil {
		a.LeftIdx = sql.NullInt32{Int32: *req.LeftIdx, Valid: true}
	}
	if req.RightIdx != nil {
		a.RightIdx = sql.NullInt32{Int32: *req.RightIdx, Valid: true}
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an asset and its stored image
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, a.ImageKey); err != nil {
		log.Warn().Err(err).Str("key", a.ImageKey).Msg("failed to delete stored asset image")
	}
	return nil
}
