package session

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ptbooth/ptbooth-api/internal/domain/photobooth"
	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
)

// Booths is the slice of the photobooth repository the session lifecycle
// needs: looking a booth up and binding/freeing its current session.
type Booths interface {
	GetByID(ctx context.Context, id uuid.UUID) (*photobooth.Photobooth, error)
	SetCurrentSession(ctx context.Context, id uuid.UUID, sessionID uuid.NullUUID, status photobooth.Status) error
}

// Broadcaster pushes session events to connected dashboard clients
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// Service handles session lifecycle
type Service struct {
	repo             Repository
	booths           Booths
	hub              Broadcaster
	sessionTTL       time.Duration
	defaultMaxPhotos int
}

// NewService creates session service. hub may be nil (reaper binary).
func NewService(repo Repository, booths Booths, hub Broadcaster, sessionTTL time.Duration, defaultMaxPhotos int) *Service {
	return &Service{
		repo:             repo,
		booths:           booths,
		hub:              hub,
		sessionTTL:       sessionTTL,
		defaultMaxPhotos: defaultMaxPhotos,
	}
}

// Create opens a pending session on an available booth and marks it busy
func (s *Service) Create(ctx context.Context, req *CreateSessionRequest) (*Session, error) {
	boothID, err := uuid.Parse(req.PhotoboothID)
	if err != nil {
		return nil, photobooth.ErrBoothNotFound
	}

	booth, err := s.booths.GetByID(ctx, boothID)
	if err != nil {
		return nil, err
	}
	if booth == nil {
		return nil, photobooth.ErrBoothNotFound
	}
	if booth.Status != photobooth.StatusAvailable {
		return nil, ErrBoothUnavailable
	}

	maxPhotos := req.MaxPhotos
	if maxPhotos == 0 {
		maxPhotos = s.defaultMaxPhotos
	}

	now := time.Now()
	sess := &Session{
		ID:           uuid.New(),
		PhotoboothID: boothID,
		Status:       StatusPending,
		MaxPhotos:    maxPhotos,
		ExpiresAt:    now.Add(s.sessionTTL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.UserID != "" {
		if userID, err := uuid.Parse(req.UserID); err == nil {
			sess.UserID = uuid.NullUUID{UUID: userID, Valid: true}
		}
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, err
	}
	if err := s.booths.SetCurrentSession(ctx, boothID,
		uuid.NullUUID{UUID: sess.ID, Valid: true}, photobooth.StatusBusy); err != nil {
		return nil, err
	}

	s.broadcast("session:created", ResponseFromEntity(sess))
	return sess, nil
}

// GetByID returns a session by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// List returns a page of sessions matching the filter
func (s *Service) List(ctx context.Context, p pagination.Params, f Filter) ([]*Session, int, error) {
	if f.Status != "" && !f.Status.IsValid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, p, f)
}

// Delete removes a session record
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Start moves a pending session to active
func (s *Service) Start(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.transition(ctx, id, StatusActive, StatusPending)
}

// Complete finishes an active session and frees the booth
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.transition(ctx, id, StatusCompleted, StatusActive)
}

// Cancel aborts a pending or active session and frees the booth. Implements
// the booth clear-session path as well.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	_, err := s.transition(ctx, id, StatusCancelled, StatusPending, StatusActive)
	return err
}

// CancelSession is Cancel returning the updated session, for the HTTP handler
func (s *Service) CancelSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.transition(ctx, id, StatusCancelled, StatusPending, StatusActive)
}

// StartCapture asks the booth to take a photo, via the realtime hub
func (s *Service) StartCapture(ctx context.Context, id uuid.UUID) error {
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sess.Status != StatusActive {
		return ErrSessionNotActive
	}

	s.broadcast("session:capture-requested", map[string]interface{}{
		"sessionId":    sess.ID,
		"photoboothId": sess.PhotoboothID,
	})
	return nil
}

// ExpireOverdue marks overdue pending/active sessions expired and frees
// their booths. Returns the number of sessions cleaned. Shared by the
// cleanup endpoint and the reaper worker.
func (s *Service) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	overdue, err := s.repo.ListOverdue(ctx, now)
	if err != nil {
		return 0, err
	}

	cleaned := 0
	for _, sess := range overdue {
		sess.Status = StatusExpired
		sess.UpdatedAt = now
		if err := s.repo.Update(ctx, sess); err != nil {
			log.Error().Err(err).Str("session_id", sess.ID.String()).Msg("failed to expire session")
			continue
		}
		s.freeBooth(ctx, sess)
		s.broadcast("session:status-changed", ResponseFromEntity(sess))
		cleaned++
	}

	if cleaned > 0 {
		log.Info().Int("cleaned", cleaned).Msg("expired overdue sessions")
	}
	return cleaned, nil
}

// transition moves a session into target if its current status is one of
// the allowed sources, maintaining timestamps and the booth binding.
func (s *Service) transition(ctx context.Context, id uuid.UUID, target Status, from ...Status) (*Session, error) {
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, f := range from {
		if sess.Status == f {
			allowed = true
			break
		}
	}
	if !allowed || sess.Status.terminal() {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	sess.Status = target
	sess.UpdatedAt = now
	switch target {
	case StatusActive:
		sess.StartedAt = sql.NullTime{Time: now, Valid: true}
	case StatusCompleted:
		sess.CompletedAt = sql.NullTime{Time: now, Valid: true}
	}

	if err := s.repo.Update(ctx, sess); err != nil {
		return nil, err
	}
	if target.terminal() {
		s.freeBooth(ctx, sess)
	}

	log.Info().Str("session_id", id.String()).Str("status", string(target)).Msg("session status changed")
	s.broadcast("session:status-changed", ResponseFromEntity(sess))
	return sess, nil
}

// freeBooth releases the booth if this session is still bound to it
func (s *Service) freeBooth(ctx context.Context, sess *Session) {
	booth, err := s.booths.GetByID(ctx, sess.PhotoboothID)
	if err != nil || booth == nil {
		return
	}
	if booth.CurrentSessionID.Valid && booth.CurrentSessionID.UUID == sess.ID {
		if err := s.booths.SetCurrentSession(ctx, booth.ID, uuid.NullUUID{}, photobooth.StatusAvailable); err != nil {
			log.Warn().Err(err).Str("booth_id", booth.ID.String()).Msg("failed to free booth")
		}
	}
}

func (s *Service) broadcast(event string, payload interface{}) {
	if s.hub != nil {
		s.hub.Broadcast(event, payload)
	}
}
