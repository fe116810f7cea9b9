package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ptbooth/ptbooth-api/internal/domain/photobooth"
	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
)

type mockRepository struct {
	sessions map[uuid.UUID]*Session
}

func newMockRepository() *mockRepository {
	return &mockRepository{sessions: make(map[uuid.UUID]*Session)}
}

func (m *mockRepository) Create(ctx context.Context, s *Session) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	return m.sessions[id], nil
}

func (m *mockRepository) List(ctx context.Context, p pagination.Params, f Filter) ([]*Session, int, error) {
	out := []*Session{}
	for _, s := range m.sessions {
		if f.Status == "" || s.Status == f.Status {
			out = append(out, s)
		}
	}
	return out, len(out), nil
}

func (m *mockRepository) Update(ctx context.Context, s *Session) error {
	if _, ok := m.sessions[s.ID]; !ok {
		return ErrSessionNotFound
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *mockRepository) ListOverdue(ctx context.Context, now time.Time) ([]*Session, error) {
	out := []*Session{}
	for _, s := range m.sessions {
		if (s.Status == StatusPending || s.Status == StatusActive) && s.ExpiresAt.Before(now) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	counts := make(map[Status]int)
	for _, s := range m.sessions {
		counts[s.Status]++
	}
	return counts, nil
}

func (m *mockRepository) CountActive(ctx context.Context) (int, error) {
	count := 0
	for _, s := range m.sessions {
		if s.Status == StatusActive {
			count++
		}
	}
	return count, nil
}

type mockBooths struct {
	booths map[uuid.UUID]*photobooth.Photobooth
}

func newMockBooths() *mockBooths {
	return &mockBooths{booths: make(map[uuid.UUID]*photobooth.Photobooth)}
}

func (m *mockBooths) add(status photobooth.Status) uuid.UUID {
	id := uuid.New()
	m.booths[id] = &photobooth.Photobooth{ID: id, Name: "Booth", Status: status}
	return id
}

func (m *mockBooths) GetByID(ctx context.Context, id uuid.UUID) (*photobooth.Photobooth, error) {
	return m.booths[id], nil
}

func (m *mockBooths) SetCurrentSession(ctx context.Context, id uuid.UUID, sessionID uuid.NullUUID, status photobooth.Status) error {
	b, ok := m.booths[id]
	if !ok {
		return photobooth.ErrBoothNotFound
	}
	b.CurrentSessionID = sessionID
	b.Status = status
	return nil
}

type recordingHub struct {
	events []string
}

func (h *recordingHub) Broadcast(event string, payload interface{}) {
	h.events = append(h.events, event)
}

func newTestService(repo *mockRepository, booths *mockBooths, hub Broadcaster) *Service {
	return NewService(repo, booths, hub, 30*time.Minute, 10)
}

func TestCreateBindsBooth(t *testing.T) {
	repo := newMockRepository()
	booths := newMockBooths()
	boothID := booths.add(photobooth.StatusAvailable)
	svc := newTestService(repo, booths, nil)

	sess, err := svc.Create(context.Background(), &CreateSessionRequest{PhotoboothID: boothID.String()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if sess.Status != StatusPending {
		t.Errorf("new session should be pending, got %s", sess.Status)
	}
	if sess.MaxPhotos != 10 {
		t.Errorf("expected default max photos 10, got %d", sess.MaxPhotos)
	}
	booth := booths.booths[boothID]
	if booth.Status != photobooth.StatusBusy {
		t.Errorf("booth should be busy, got %s", booth.Status)
	}
	if !booth.CurrentSessionID.Valid || booth.CurrentSessionID.UUID != sess.ID {
		t.Error("booth should be bound to the new session")
	}
}

func TestCreateOnBusyBooth(t *testing.T) {
	booths := newMockBooths()
	boothID := booths.add(photobooth.StatusBusy)
	svc := newTestService(newMockRepository(), booths, nil)

	_, err := svc.Create(context.Background(), &CreateSessionRequest{PhotoboothID: boothID.String()})
	if !errors.Is(err, ErrBoothUnavailable) {
		t.Errorf("expected ErrBoothUnavailable, got %v", err)
	}
}

func TestLifecycleTransitions(t *testing.T) {
	repo := newMockRepository()
	booths := newMockBooths()
	boothID := booths.add(photobooth.StatusAvailable)
	svc := newTestService(repo, booths, nil)

	sess, err := svc.Create(context.Background(), &CreateSessionRequest{PhotoboothID: boothID.String()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Completing a pending session skips a state.
	if _, err := svc.Complete(context.Background(), sess.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("pending -> completed should be rejected, got %v", err)
	}

	started, err := svc.Start(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if started.Status != StatusActive || !started.StartedAt.Valid {
		t.Errorf("started session should be active with started_at set: %+v", started)
	}

	completed, err := svc.Complete(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if completed.Status != StatusCompleted || !completed.CompletedAt.Valid {
		t.Errorf("completed session should carry completed_at: %+v", completed)
	}
	if booths.booths[boothID].Status != photobooth.StatusAvailable {
		t.Error("booth should be freed after completion")
	}

	// Terminal sessions accept no further transitions.
	if _, err := svc.Start(context.Background(), sess.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("completed -> active should be rejected, got %v", err)
	}
	if err := svc.Cancel(context.Background(), sess.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("completed -> cancelled should be rejected, got %v", err)
	}
}

func TestCancelFreesBooth(t *testing.T) {
	repo := newMockRepository()
	booths := newMockBooths()
	boothID := booths.add(photobooth.StatusAvailable)
	svc := newTestService(repo, booths, nil)

	sess, err := svc.Create(context.Background(), &CreateSessionRequest{PhotoboothID: boothID.String()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Cancel(context.Background(), sess.ID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if repo.sessions[sess.ID].Status != StatusCancelled {
		t.Errorf("expected cancelled, got %s", repo.sessions[sess.ID].Status)
	}
	if booths.booths[boothID].Status != photobooth.StatusAvailable {
		t.Error("booth should be freed after cancel")
	}
}

func TestStartCaptureBroadcasts(t *testing.T) {
	repo := newMockRepository()
	booths := newMockBooths()
	boothID := booths.add(photobooth.StatusAvailable)
	hub := &recordingHub{}
	svc := newTestService(repo, booths, hub)

	sess, err := svc.Create(context.Background(), &CreateSessionRequest{PhotoboothID: boothID.String()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Capture on a pending session is refused.
	if err := svc.StartCapture(context.Background(), sess.ID); !errors.Is(err, ErrSessionNotActive) {
		t.Errorf("expected ErrSessionNotActive, got %v", err)
	}

	if _, err := svc.Start(context.Background(), sess.ID); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := svc.StartCapture(context.Background(), sess.ID); err != nil {
		t.Fatalf("StartCapture failed: %v", err)
	}

	found := false
	for _, e := range hub.events {
		if e == "session:capture-requested" {
			found = true
		}
	}
	if !found {
		t.Errorf("capture request should be broadcast, events: %v", hub.events)
	}
}

func TestExpireOverdue(t *testing.T) {
	repo := newMockRepository()
	booths := newMockBooths()
	boothID := booths.add(photobooth.StatusAvailable)
	svc := newTestService(repo, booths, nil)

	sess, err := svc.Create(context.Background(), &CreateSessionRequest{PhotoboothID: boothID.String()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Not yet overdue.
	cleaned, err := svc.ExpireOverdue(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("ExpireOverdue failed: %v", err)
	}
	if cleaned != 0 {
		t.Errorf("nothing should be cleaned before expiry, got %d", cleaned)
	}

	cleaned, err = svc.ExpireOverdue(context.Background(), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("ExpireOverdue failed: %v", err)
	}
	if cleaned != 1 {
		t.Errorf("expected 1 cleaned session, got %d", cleaned)
	}
	if repo.sessions[sess.ID].Status != StatusExpired {
		t.Errorf("expected expired, got %s", repo.sessions[sess.ID].Status)
	}
	if booths.booths[boothID].Status != photobooth.StatusAvailable {
		t.Error("booth should be freed after expiry")
	}
}
