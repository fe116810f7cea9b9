package topup

import (
	"context"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ptbooth/ptbooth-api/internal/domain/bank"
	"github.com/ptbooth/ptbooth-api/internal/domain/user"
	"github.com/ptbooth/ptbooth-api/internal/pkg/sepay"
)

// Users resolves the target user (for the payment code)
type Users interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// BankProfiles resolves the configured receiving account
type BankProfiles interface {
	Get(ctx context.Context) (*bank.BankInfo, error)
}

// Ledger credits points. The backend owns the balance; this service only
// hands over a validated delta.
type Ledger interface {
	AddPoints(ctx context.Context, userID uuid.UUID, delta int64, adminID uuid.UUID) (*user.User, error)
}

// Service runs the top-up workflow: intent building (no side effects) and
// submission through the per admin/user flow state machine.
type Service struct {
	users   Users
	banks   BankProfiles
	ledger  Ledger
	encoder *sepay.Encoder
	flows   *Registry
}

// NewService creates top-up service
func NewService(users Users, banks BankProfiles, ledger Ledger, encoder *sepay.Encoder) *Service {
	return &Service{
		users:   users,
		banks:   banks,
		ledger:  ledger,
		encoder: encoder,
		flows:   NewRegistry(),
	}
}

// BuildIntent validates the request and, in qr mode, encodes the transfer
// description and QR URL. It never touches the balance.
func (s *Service) BuildIntent(ctx context.Context, userID uuid.UUID, req *TopUpRequest) (*IntentResponse, error) {
	switch Mode(req.Mode) {
	case ModeManual:
		points, err := validateManual(req)
		if err != nil {
			return nil, err
		}
		return &IntentResponse{Mode: string(ModeManual), Points: points}, nil

	case ModeQR:
		amount, points, err := validateQR(req)
		if err != nil {
			return nil, err
		}

		profile, err := s.banks.Get(ctx)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, ErrBankNotConfigured
		}

		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}

		transfer, err := s.encoder.Encode(sepay.Account{
			AccountNumber: profile.AccountNumber,
			BankCode:      profile.BankCode,
		}, u.PaymentCode, &amount)
		if err != nil {
			return nil, err
		}

		return &IntentResponse{
			Mode:        string(ModeQR),
			Points:      points,
			Amount:      amount,
			Description: transfer.Description,
			QRURL:       transfer.QRURL,
		}, nil

	default:
		return nil, ErrInvalidMode
	}
}

// Submit runs the full flow for one admin/user pair: enter the state
// machine, validate, credit, resolve. A second submission while one is in
// flight is rejected before any validation or credit happens.
func (s *Service) Submit(ctx context.Context, adminID, userID uuid.UUID, req *TopUpRequest) (*user.User, error) {
	in := Input{Mode: Mode(req.Mode)}
	if req.Points != nil {
		in.Points = *req.Points
	}
	if req.Amount != nil {
		in.Amount = *req.Amount
	}
	if err := s.flows.Begin(adminID, userID, in); err != nil {
		return nil, err
	}

	u, err := s.submit(ctx, adminID, userID, req)
	s.flows.Finish(adminID, userID, err)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("admin_id", adminID.String()).
		Str("mode", req.Mode).
		Int64("balance", u.Points).
		Msg("top-up credited")
	return u, nil
}

func (s *Service) submit(ctx context.Context, adminID, userID uuid.UUID, req *TopUpRequest) (*user.User, error) {
	intent, err := s.BuildIntent(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	return s.ledger.AddPoints(ctx, userID, intent.Points, adminID)
}

func validateManual(req *TopUpRequest) (int64, error) {
	if req.Points == nil || *req.Points < 1 {
		return 0, ErrInvalidPoints
	}
	return *req.Points, nil
}

// validateQR checks the VND amount and derives points at 1 VND = 1 point,
// rounding down. Fractional amounts below 1 VND credit nothing and are
// rejected rather than silently becoming zero.
func validateQR(req *TopUpRequest) (float64, int64, error) {
	if req.Amount == nil || *req.Amount <= 0 || math.IsNaN(*req.Amount) || math.IsInf(*req.Amount, 0) {
		return 0, 0, ErrInvalidAmount
	}
	points := int64(math.Floor(*req.Amount))
	if points < 1 {
		return 0, 0, ErrAmountTooSmall
	}
	return *req.Amount, points, nil
}
