package bank

import "errors"

var (
	ErrBankInfoNotFound    = errors.New("bank info not configured")
	ErrBankRequired        = errors.New("bank is required")
	ErrAccountNumberLength = errors.New("account number must be at least 8 characters")
	ErrHolderNameLength    = errors.New("account holder name must be at least 2 characters")
)
