package topup

import "errors"

var (
	ErrInvalidMode        = errors.New("top-up mode must be manual or qr")
	ErrInvalidPoints      = errors.New("points must be a positive integer")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrAmountTooSmall     = errors.New("amount is too small to credit any points")
	ErrBankNotConfigured  = errors.New("bank account is not configured")
	ErrSubmissionInFlight = errors.New("a top-up submission is already in progress")
)
