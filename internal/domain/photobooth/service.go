package photobooth

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
)

// SessionCanceller cancels a stuck session when a booth is cleared
type SessionCanceller interface {
	Cancel(ctx context.Context, sessionID uuid.UUID) error
}

// Broadcaster pushes booth events to connected dashboard clients
type Broadcaster interface {
	Broadcast(event string, payload interface{})
}

// Service handles photobooth business logic
type Service struct {
	repo     Repository
	sessions SessionCanceller
	hub      Broadcaster
}

// NewService creates photobooth service. sessions and hub may be nil in
// contexts that never clear sessions or broadcast (the reaper binary).
func NewService(repo Repository, sessions SessionCanceller, hub Broadcaster) *Service {
	return &Service{repo: repo, sessions: sessions, hub: hub}
}

// SetSessionCanceller wires the session layer in after construction; the
// session service itself needs the booth repository, so one side has to be
// attached late.
func (s *Service) SetSessionCanceller(sessions SessionCanceller) {
	s.sessions = sessions
}

// Create registers a new booth, starting offline until it reports in
func (s *Service) Create(ctx context.Context, req *CreateBoothRequest) (*Photobooth, error) {
	now := time.Now()
	b := &Photobooth{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Location:  sql.NullString{String: req.Location, Valid: req.Location != ""},
		Status:    StatusOffline,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.broadcast("photobooth:created", ResponseFromEntity(b))
	return b, nil
}

// GetByID returns a booth by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Photobooth, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBoothNotFound
	}
	return b, nil
}

// List returns a page of booths, optionally filtered by status
func (s *Service) List(ctx context.Context, p pagination.Params, status Status) ([]*Photobooth, int, error) {
	if status != "" && !status.IsValid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, p, status)
}

// Update modifies booth fields present in the request
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateBoothRequest) (*Photobooth, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		b.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		b.Location = sql.NullString{String: *req.Location, Valid: *req.Location != ""}
	}
	b.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes a booth
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// UpdateStatus sets a booth's status directly (admin override)
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) (*Photobooth, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}

	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info().Str("booth_id", id.String()).Str("status", string(status)).Msg("photobooth status changed")
	s.broadcast("photobooth:status-changed", ResponseFromEntity(b))
	return b, nil
}

// ClearSession cancels whatever session the booth is holding and frees it.
// Used when a kiosk crashes mid-session and leaves the booth stuck busy.
func (s *Service) ClearSession(ctx context.Context, id uuid.UUID) (*Photobooth, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.CurrentSessionID.Valid {
		return nil, ErrNoStuckSession
	}

	if s.sessions != nil {
		if err := s.sessions.Cancel(ctx, b.CurrentSessionID.UUID); err != nil {
			log.Warn().Err(err).
				Str("booth_id", id.String()).
				Str("session_id", b.CurrentSessionID.UUID.String()).
				Msg("clearing booth with uncancellable session")
		}
	}

	if err := s.repo.SetCurrentSession(ctx, id, uuid.NullUUID{}, StatusAvailable); err != nil {
		return nil, err
	}

	b, err = s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.broadcast("photobooth:status-changed", ResponseFromEntity(b))
	return b, nil
}

func (s *Service) broadcast(event string, payload interface{}) {
	if s.hub != nil {
		s.hub.Broadcast(event, payload)
	}
}
