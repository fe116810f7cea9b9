package bank

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// BankInfo is the tenant's receiving bank account. A single row exists at a
// time; creating a new profile replaces the previous one.
type BankInfo struct {
	ID                uuid.UUID      `db:"id"`
	BankCode          string         `db:"bank_code"`
	BankName          string         `db:"bank_name"`
	AccountNumber     string         `db:"account_number"`
	AccountHolderName string         `db:"account_holder_name"`
	Branch            sql.NullString `db:"branch"`
	StaticQRCodeURL   sql.NullString `db:"static_qr_code_url"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}
