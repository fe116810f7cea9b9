package bank

import (
	"time"

	"github.com/google/uuid"
)

// UpsertBankInfoRequest for POST /admin/bank-info and PUT /admin/bank-info/{id}
type UpsertBankInfoRequest struct {
	BankCode          string `json:"bankCode" validate:"required"`
	BankName          string `json:"bankName" validate:"required"`
	AccountNumber     string `json:"accountNumber" validate:"required,min=8"`
	AccountHolderName string `json:"accountHolderName" validate:"required,min=2"`
	Branch            string `json:"branch" validate:"omitempty,max=255"`
	StaticQRCodeURL   string `json:"staticQrCodeUrl" validate:"omitempty,url"`
}

// BankInfoResponse represents the configured profile in API responses
type BankInfoResponse struct {
	ID                uuid.UUID `json:"id"`
	BankCode          string    `json:"bankCode"`
	BankName          string    `json:"bankName"`
	AccountNumber     string    `json:"accountNumber"`
	AccountHolderName string    `json:"accountHolderName"`
	Branch            string    `json:"branch,omitempty"`
	StaticQRCodeURL   string    `json:"staticQrCodeUrl,omitempty"`
	CreatedAt         string    `json:"createdAt"`
	UpdatedAt         string    `json:"updatedAt"`
}

// ResponseFromEntity converts entity to response DTO
func ResponseFromEntity(b *BankInfo) *BankInfoResponse {
	return &BankInfoResponse{
		ID:                b.ID,
		BankCode:          b.BankCode,
		BankName:          b.BankName,
		AccountNumber:     b.AccountNumber,
		AccountHolderName: b.AccountHolderName,
		Branch:            b.Branch.String,
		StaticQRCodeURL:   b.StaticQRCodeURL.String,
		CreatedAt:         b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         b.UpdatedAt.Format(time.RFC3339),
	}
}
