package bank

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ptbooth/ptbooth-api/internal/pkg/vietqr"
)

// Directory lists banks from the external directory service
type Directory interface {
	ListBanks(ctx context.Context) ([]vietqr.Bank, error)
}

// Service handles the bank directory and the tenant's receiving profile
type Service struct {
	repo      Repository
	directory Directory
}

// NewService creates bank service
func NewService(repo Repository, directory Directory) *Service {
	return &Service{repo: repo, directory: directory}
}

// ListBanks returns the external bank directory. Failures here are
// recoverable: the caller surfaces them but manual top-up keeps working.
func (s *Service) ListBanks(ctx context.Context) ([]vietqr.Bank, error) {
	banks, err := s.directory.ListBanks(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("bank directory fetch failed")
		return nil, err
	}
	return banks, nil
}

// Get returns the configured profile, or ErrBankInfoNotFound when none is
// configured. An unconfigured profile is an expected state, not a failure.
func (s *Service) Get(ctx context.Context) (*BankInfo, error) {
	b, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBankInfoNotFound
	}
	return b, nil
}

// Upsert validates and stores a new profile, replacing any existing one
func (s *Service) Upsert(ctx context.Context, req *UpsertBankInfoRequest) (*BankInfo, error) {
	if err := validateProfile(req); err != nil {
		return nil, err
	}

	now := time.Now()
	b := &BankInfo{
		ID:                uuid.New(),
		BankCode:          strings.TrimSpace(req.BankCode),
		BankName:          strings.TrimSpace(req.BankName),
		AccountNumber:     strings.TrimSpace(req.AccountNumber),
		AccountHolderName: strings.ToUpper(strings.TrimSpace(req.AccountHolderName)),
		Branch:            sql.NullString{String: req.Branch, Valid: req.Branch != ""},
		StaticQRCodeURL:   sql.NullString{String: req.StaticQRCodeURL, Valid: req.StaticQRCodeURL != ""},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Upsert(ctx, b); err != nil {
		return nil, err
	}

	log.Info().Str("bank_code", b.BankCode).Str("bank_info_id", b.ID.String()).Msg("bank profile configured")
	return b, nil
}

// Update modifies the existing profile in place
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpsertBankInfoRequest) (*BankInfo, error) {
	if err := validateProfile(req); err != nil {
		return nil, err
	}

	b, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if b.ID != id {
		return nil, ErrBankInfoNotFound
	}

	b.BankCode = strings.TrimSpace(req.BankCode)
	b.BankName = strings.TrimSpace(req.BankName)
	b.AccountNumber = strings.TrimSpace(req.AccountNumber)
	b.AccountHolderName = strings.ToUpper(strings.TrimSpace(req.AccountHolderName))
	b.Branch = sql.NullString{String: req.Branch, Valid: req.Branch != ""}
	b.StaticQRCodeURL = sql.NullString{String: req.StaticQRCodeURL, Valid: req.StaticQRCodeURL != ""}
	b.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes the configured profile
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func validateProfile(req *UpsertBankInfoRequest) error {
	if strings.TrimSpace(req.BankCode) == "" || strings.TrimSpace(req.BankName) == "" {
		return ErrBankRequired
	}
	if len(strings.TrimSpace(req.AccountNumber)) < 8 {
		return ErrAccountNumberLength
	}
	if len(strings.TrimSpace(req.AccountHolderName)) < 2 {
		return ErrHolderNameLength
	}
	return nil
}
