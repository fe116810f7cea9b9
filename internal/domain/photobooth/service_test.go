package photobooth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
)

type mockRepository struct {
	booths map[uuid.UUID]*Photobooth
}

func newMockRepository() *mockRepository {
	return &mockRepository{booths: make(map[uuid.UUID]*Photobooth)}
}

func (m *mockRepository) Create(ctx context.Context, b *Photobooth) error {
	m.booths[b.ID] = b
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Photobooth, error) {
	return m.booths[id], nil
}

func (m *mockRepository) List(ctx context.Context, p pagination.Params, status Status) ([]*Photobooth, int, error) {
	out := []*Photobooth{}
	for _, b := range m.booths {
		if status == "" || b.Status == status {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}

func (m *mockRepository) Update(ctx context.Context, b *Photobooth) error {
	if _, ok := m.booths[b.ID]; !ok {
		return ErrBoothNotFound
	}
	m.booths[b.ID] = b
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.booths[id]; !ok {
		return ErrBoothNotFound
	}
	delete(m.booths, id)
	return nil
}

func (m *mockRepository) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	b, ok := m.booths[id]
	if !ok {
		return ErrBoothNotFound
	}
	b.Status = status
	return nil
}

func (m *mockRepository) SetCurrentSession(ctx context.Context, id uuid.UUID, sessionID uuid.NullUUID, status Status) error {
	b, ok := m.booths[id]
	if !ok {
		return ErrBoothNotFound
	}
	b.CurrentSessionID = sessionID
	b.Status = status
	return nil
}

func (m *mockRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	counts := make(map[Status]int)
	for _, b := range m.booths {
		counts[b.Status]++
	}
	return counts, nil
}

type mockCanceller struct {
	cancelled []uuid.UUID
}

func (m *mockCanceller) Cancel(ctx context.Context, sessionID uuid.UUID) error {
	m.cancelled = append(m.cancelled, sessionID)
	return nil
}

func TestCreateStartsOffline(t *testing.T) {
	svc := NewService(newMockRepository(), nil, nil)

	b, err := svc.Create(context.Background(), &CreateBoothRequest{Name: "Booth 1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if b.Status != StatusOffline {
		t.Errorf("new booth should start offline, got %s", b.Status)
	}
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, nil, nil)

	b, err := svc.Create(context.Background(), &CreateBoothRequest{Name: "Booth 1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), b.ID, Status("exploded"))
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}

	got, err := svc.UpdateStatus(context.Background(), b.ID, StatusMaintenance)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if got.Status != StatusMaintenance {
		t.Errorf("expected maintenance, got %s", got.Status)
	}
}

func TestClearSession(t *testing.T) {
	repo := newMockRepository()
	canceller := &mockCanceller{}
	svc := NewService(repo, canceller, nil)

	b, err := svc.Create(context.Background(), &CreateBoothRequest{Name: "Booth 1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Without a session there is nothing to clear.
	if _, err := svc.ClearSession(context.Background(), b.ID); !errors.Is(err, ErrNoStuckSession) {
		t.Errorf("expected ErrNoStuckSession, got %v", err)
	}

	sessionID := uuid.New()
	repo.booths[b.ID].CurrentSessionID = uuid.NullUUID{UUID: sessionID, Valid: true}
	repo.booths[b.ID].Status = StatusBusy

	got, err := svc.ClearSession(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("ClearSession failed: %v", err)
	}
	if got.CurrentSessionID.Valid {
		t.Error("booth should have no session after clearing")
	}
	if got.Status != StatusAvailable {
		t.Errorf("booth should be available after clearing, got %s", got.Status)
	}
	if len(canceller.cancelled) != 1 || canceller.cancelled[0] != sessionID {
		t.Errorf("stuck session should be cancelled, got %v", canceller.cancelled)
	}
}
