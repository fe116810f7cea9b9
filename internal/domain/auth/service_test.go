package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ptbooth/ptbooth-api/internal/pkg/jwt"
)

type mockRepository struct {
	admins map[string]*Admin
}

func newMockRepository() *mockRepository {
	return &mockRepository{admins: make(map[string]*Admin)}
}

func (m *mockRepository) Create(ctx context.Context, a *Admin) error {
	if _, ok := m.admins[a.Email]; ok {
		return ErrEmailExists
	}
	m.admins[a.Email] = a
	return nil
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	return m.admins[email], nil
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Admin, error) {
	for _, a := range m.admins {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

type mockRevoker struct {
	revoked map[string]time.Duration
}

func (m *mockRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if m.revoked == nil {
		m.revoked = make(map[string]time.Duration)
	}
	m.revoked[jti] = ttl
	return nil
}

func newTestService(repo Repository, revoker Revoker) *Service {
	return NewService(repo, jwt.NewService("test-secret", time.Hour), revoker)
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, nil)

	reg, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "Admin@Example.com",
		Name:     "Admin",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.AccessToken == "" {
		t.Error("register should issue a token")
	}
	if reg.User.Email != "admin@example.com" {
		t.Errorf("email should be normalized, got %q", reg.User.Email)
	}

	login, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "admin@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Error("login should resolve the registered account")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, nil)

	if _, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "admin@example.com",
		Name:     "Admin",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong horse",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(newMockRepository(), nil)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(newMockRepository(), nil)

	req := &RegisterRequest{Email: "admin@example.com", Name: "Admin", Password: "correct horse"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	revoker := &mockRevoker{}
	svc := newTestService(newMockRepository(), revoker)

	reg, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "admin@example.com",
		Name:     "Admin",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.Logout(context.Background(), reg.AccessToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if len(revoker.revoked) != 1 {
		t.Errorf("expected one revoked token, got %d", len(revoker.revoked))
	}
	for _, ttl := range revoker.revoked {
		if ttl <= 0 || ttl > time.Hour {
			t.Errorf("revocation TTL should match remaining token life, got %v", ttl)
		}
	}
}

func TestLogoutGarbageTokenIsNoop(t *testing.T) {
	revoker := &mockRevoker{}
	svc := newTestService(newMockRepository(), revoker)

	if err := svc.Logout(context.Background(), "not-a-token"); err != nil {
		t.Fatalf("Logout with invalid token should not error: %v", err)
	}
	if len(revoker.revoked) != 0 {
		t.Error("invalid tokens should not be recorded")
	}
}
