package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ptbooth/ptbooth-api/internal/pkg/jwt"
	"github.com/ptbooth/ptbooth-api/internal/pkg/password"
)

// Revoker invalidates a token ID until its expiry
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// Service handles admin authentication
type Service struct {
	repo        Repository
	jwt         *jwt.Service
	revocations Revoker
}

// NewService creates auth service. revocations may be nil; logout then
// degrades to a client-side token drop.
func NewService(repo Repository, jwtService *jwt.Service, revocations Revoker) *Service {
	return &Service{repo: repo, jwt: jwtService, revocations: revocations}
}

// Register creates a new admin account and logs it in
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	admin := &Admin{
		ID:           uuid.New(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, err
	}

	log.Info().Str("admin_id", admin.ID.String()).Msg("admin registered")
	return s.issueToken(admin)
}

// Login verifies credentials and issues an access token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}
	if !password.Verify(req.Password, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(admin)
}

// Logout revokes the presented token until it would have expired anyway
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	claims, err := s.jwt.ValidateAccessToken(rawToken)
	if err != nil {
		// Already invalid; nothing to revoke.
		return nil
	}
	if s.revocations == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	return s.revocations.Revoke(ctx, claims.ID, ttl)
}

func (s *Service) issueToken(admin *Admin) (*AuthResponse, error) {
	token, err := s.jwt.GenerateAccessToken(admin.ID, admin.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		AccessToken: token,
		User:        AdminSummary{ID: admin.ID, Email: admin.Email, Name: admin.Name},
	}, nil
}
