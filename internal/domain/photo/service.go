package photo

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ptbooth/ptbooth-api/internal/domain/session"
	"github.com/ptbooth/ptbooth-api/internal/pkg/imaging"
	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
	"github.com/ptbooth/ptbooth-api/internal/pkg/storage"
)

// Sessions is the slice of the session layer the photo flow needs
type Sessions interface {
	GetByID(ctx context.Context, id uuid.UUID) (*session.Session, error)
}

// Service handles photo uploads and the admin photo catalogue
type Service struct {
	repo      Repository
	sessions  Sessions
	store     storage.Storage
	processor *imaging.Processor
}

// NewService creates photo service
func NewService(repo Repository, sessions Sessions, store storage.Storage, processor *imaging.Processor) *Service {
	return &Service{repo: repo, sessions: sessions, store: store, processor: processor}
}

// Upload validates, processes and stores an uploaded image, producing an
// unattached photo record with original and thumbnail URLs.
func (s *Service) Upload(ctx context.Context, reader io.Reader) (*Photo, error) {
	buf, _, err := storage.ValidateAndBuffer(reader, storage.CategoryPhoto)
	if err != nil {
		return nil, err
	}

	processed, err := s.processor.Process(buf)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	ext := storage.GetExtensionForMime(processed.ContentType)
	imageKey := "photos/" + id.String() + ext
	thumbKey := "photos/thumbs/" + id.String() + ext

	if err := s.store.Put(ctx, imageKey, bytes.NewReader(processed.Original), processed.ContentType); err != nil {
		return nil, err
	}
	if err := s.store.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), processed.ContentType); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &Photo{
		ID:           id,
		ImageKey:     imageKey,
		ImageURL:     s.store.GetURL(imageKey),
		ThumbnailKey: sql.NullString{String: thumbKey, Valid: true},
		ThumbnailURL: sql.NullString{String: s.store.GetURL(thumbKey), Valid: true},
		Width:        processed.Width,
		Height:       processed.Height,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info().Str("photo_id", id.String()).Int("bytes", len(processed.Original)).Msg("photo uploaded")
	return p, nil
}

// Attach binds an uploaded photo to a session, honouring its photo cap
func (s *Service) Attach(ctx context.Context, sessionID, photoID uuid.UUID) (*Photo, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if count >= sess.MaxPhotos {
		return nil, session.ErrMaxPhotosReached
	}

	if err := s.repo.AttachToSession(ctx, photoID, sessionID); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, photoID)
}

// GetByID returns a photo by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPhotoNotFound
	}
	return p, nil
}

// List returns a page of photos
func (s *Service) List(ctx context.Context, p pagination.Params, sessionID uuid.NullUUID, processed *bool) ([]*Photo, int, error) {
	return s.repo.List(ctx, p, sessionID, processed)
}

// Update toggles the processed flag
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdatePhotoRequest) (*Photo, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Processed = *req.Processed
	p.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a photo and its stored objects
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.deleteObjects(ctx, p)
	return nil
}

// BulkUpdateProcessed flips the processed flag on many photos at once
func (s *Service) BulkUpdateProcessed(ctx context.Context, ids []uuid.UUID, processed bool) (int, error) {
	if len(ids) == 0 {
		return 0, ErrNoPhotoIDs
	}
	return s.repo.BulkUpdateProcessed(ctx, ids, processed)
}

// BulkDelete removes many photos and their stored objects
func (s *Service) BulkDelete(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, ErrNoPhotoIDs
	}

	photos, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	deleted, err := s.repo.BulkDelete(ctx, ids)
	if err != nil {
		return 0, err
	}
	for _, p := range photos {
		s.deleteObjects(ctx, p)
	}
	return deleted, nil
}

// deleteObjects best-effort removes stored blobs; the row is already gone
func (s *Service) deleteObjects(ctx context.Context, p *Photo) {
	if err := s.store.Delete(ctx, p.ImageKey); err != nil {
		log.Warn().Err(err).Str("key", p.ImageKey).Msg("failed to delete stored image")
	}
	if p.ThumbnailKey.Valid {
		if err := s.store.Delete(ctx, p.ThumbnailKey.String); err != nil {
			log.Warn().Err(err).Str("key", p.ThumbnailKey.String).Msg("failed to delete stored thumbnail")
		}
	}
}
