package sepay

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// DescriptionPrefix is the fixed product prefix embedded in every transfer
// description. The receiving bank's reconciliation process matches on this
// exact prefix, so it must never change per deployment.
const DescriptionPrefix = "PTB"

// DefaultBaseURL is the SePay QR image endpoint
const DefaultBaseURL = "https://qr.sepay.vn/img"

var (
	ErrMissingPaymentCode = errors.New("cannot generate QR: user has no payment code")
	ErrMissingAccount     = errors.New("cannot generate QR: bank account is not configured")
)

// Account identifies the receiving bank account
type Account struct {
	AccountNumber string
	BankCode      string
}

// Transfer is the encoded result: the canonical transfer description and
// the QR image URL. The URL is only a string; whether the image endpoint is
// reachable is the display layer's problem.
type Transfer struct {
	Description string `json:"description"`
	QRURL       string `json:"qrUrl"`
}

// Encoder builds transfer descriptions and QR image URLs
type Encoder struct {
	baseURL string
}

// NewEncoder creates an encoder. An empty baseURL falls back to the public
// SePay endpoint.
func NewEncoder(baseURL string) *Encoder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Encoder{baseURL: strings.TrimRight(baseURL, "?")}
}

// Description returns the canonical transfer description for a payment code.
// A missing code is refused outright rather than degrading into a garbage
// description the reconciliation side would silently drop.
func Description(paymentCode string) (string, error) {
	code := strings.TrimSpace(paymentCode)
	if code == "" {
		return "", ErrMissingPaymentCode
	}
	return DescriptionPrefix + code, nil
}

// Encode builds the transfer description and QR URL for an account, payment
// code and optional amount. amount is included only when present and > 0.
func (e *Encoder) Encode(account Account, paymentCode string, amount *float64) (*Transfer, error) {
	description, err := Description(paymentCode)
	if err != nil {
		return nil, err
	}

	acc := strings.TrimSpace(account.AccountNumber)
	bank := strings.TrimSpace(account.BankCode)
	if acc == "" || bank == "" {
		return nil, ErrMissingAccount
	}

	params := url.Values{}
	params.Set("acc", acc)
	params.Set("bank", bank)
	if amount != nil && wellFormedAmount(*amount) {
		params.Set("amount", strconv.FormatFloat(*amount, 'f', -1, 64))
	}
	params.Set("des", description)

	return &Transfer{
		Description: description,
		QRURL:       e.baseURL + "?" + params.Encode(),
	}, nil
}

func wellFormedAmount(a float64) bool {
	return a > 0 && !math.IsNaN(a) && !math.IsInf(a, 0)
}
