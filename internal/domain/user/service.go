package user

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
	"github.com/ptbooth/ptbooth-api/internal/pkg/password"
)

// Service handles user business logic, including the points ledger
type Service struct {
	repo Repository
}

// NewService creates user service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new user with a freshly generated payment code
func (s *Service) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	now := time.Now()
	u := &User{
		ID:          uuid.New(),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Name:        strings.TrimSpace(req.Name),
		Phone:       sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		Address:     sql.NullString{String: req.Address, Valid: req.Address != ""},
		Points:      0,
		PaymentCode: generatePaymentCode(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if req.Password != "" {
		hashed, err := password.Hash(req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = sql.NullString{String: hashed, Valid: true}
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Str("payment_code", u.PaymentCode).Msg("user created")
	return u, nil
}

// GetByID returns a user by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// List returns a page of users
func (s *Service) List(ctx context.Context, p pagination.Params) ([]*User, int, error) {
	return s.repo.List(ctx, p)
}

// Update modifies user fields present in the request
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Name != nil {
		u.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		u.Phone = sql.NullString{String: *req.Phone, Valid: *req.Phone != ""}
	}
	if req.Address != nil {
		u.Address = sql.NullString{String: *req.Address, Valid: *req.Address != ""}
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := password.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = sql.NullString{String: hashed, Valid: true}
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes a user
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// AddPoints credits a positive point delta to a user's balance. The balance
// itself lives in the database; this service never computes or caches it.
func (s *Service) AddPoints(ctx context.Context, id uuid.UUID, delta int64, adminID uuid.UUID) (*User, error) {
	if delta < 1 {
		return nil, ErrInvalidPointsDelta
	}

	u, err := s.repo.AddPoints(ctx, id, delta, adminID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", id.String()).
		Str("admin_id", adminID.String()).
		Int64("delta", delta).
		Int64("balance", u.Points).
		Msg("points credited")
	return u, nil
}

// generatePaymentCode returns a stable 8-character upper-case code used as
// the transfer-description suffix.
func generatePaymentCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// fall back to a uuid-derived code rather than aborting creation.
		return strings.ToUpper(uuid.New().String()[:8])
	}
	return strings.ToUpper(hex.EncodeToString(b))
}
