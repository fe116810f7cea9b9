package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
)

type mockRepository struct {
	users         map[uuid.UUID]*User
	byEmail       map[string]*User
	addPointsCall int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:   make(map[uuid.UUID]*User),
		byEmail: make(map[string]*User),
	}
}

func (m *mockRepository) Create(ctx context.Context, u *User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return ErrEmailExists
	}
	m.users[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return m.users[id], nil
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return m.byEmail[email], nil
}

func (m *mockRepository) List(ctx context.Context, p pagination.Params) ([]*User, int, error) {
	out := make([]*User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, len(out), nil
}

func (m *mockRepository) Update(ctx context.Context, u *User) error {
	if _, ok := m.users[u.ID]; !ok {
		return ErrUserNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockRepository) AddPoints(ctx context.Context, id uuid.UUID, delta int64, adminID uuid.UUID) (*User, error) {
	m.addPointsCall++
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	u.Points += delta
	return u, nil
}

func TestCreateGeneratesPaymentCode(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	u, err := svc.Create(context.Background(), &CreateUserRequest{
		Email: "alice@example.com",
		Name:  "Alice",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(u.PaymentCode) != 8 {
		t.Errorf("expected 8-char payment code, got %q", u.PaymentCode)
	}
	if u.PaymentCode != strings.ToUpper(u.PaymentCode) {
		t.Errorf("payment code should be upper-case, got %q", u.PaymentCode)
	}
	if u.Points != 0 {
		t.Errorf("new user should start with 0 points, got %d", u.Points)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	req := &CreateUserRequest{Email: "bob@example.com", Name: "Bob"}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestAddPointsRejectsNonPositiveDelta(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	u, err := svc.Create(context.Background(), &CreateUserRequest{
		Email: "carol@example.com",
		Name:  "Carol",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for _, delta := range []int64{0, -1, -500} {
		_, err := svc.AddPoints(context.Background(), u.ID, delta, uuid.New())
		if !errors.Is(err, ErrInvalidPointsDelta) {
			t.Errorf("delta %d: expected ErrInvalidPointsDelta, got %v", delta, err)
		}
	}
	if repo.addPointsCall != 0 {
		t.Errorf("repository should not be called for invalid deltas, got %d calls", repo.addPointsCall)
	}
}

func TestAddPointsCredits(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	u, err := svc.Create(context.Background(), &CreateUserRequest{
		Email: "dave@example.com",
		Name:  "Dave",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.AddPoints(context.Background(), u.ID, 50000, uuid.New())
	if err != nil {
		t.Fatalf("AddPoints failed: %v", err)
	}
	if updated.Points != 50000 {
		t.Errorf("expected balance 50000, got %d", updated.Points)
	}

	updated, err = svc.AddPoints(context.Background(), u.ID, 1, uuid.New())
	if err != nil {
		t.Fatalf("AddPoints failed: %v", err)
	}
	if updated.Points != 50001 {
		t.Errorf("expected balance 50001, got %d", updated.Points)
	}
}

func TestAddPointsUserNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.AddPoints(context.Background(), uuid.New(), 100, uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
