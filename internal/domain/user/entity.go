package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User represents a platform end-user: someone who runs photobooth sessions
// and holds a loyalty points balance.
type User struct {
	ID           uuid.UUID      `db:"id"`
	Email        string         `db:"email"`
	Name         string         `db:"name"`
	PasswordHash sql.NullString `db:"password_hash"`
	Phone        sql.NullString `db:"phone"`
	Address      sql.NullString `db:"address"`

	// Points balance, owned by this service. Mutated only through delta
	// operations in the points ledger; never set to an absolute value
	// from the outside.
	Points int64 `db:"points"`

	// PaymentCode is the stable per-user code embedded in bank transfer
	// descriptions (see the sepay package). Generated once at creation.
	PaymentCode string `db:"payment_code"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// TransactionType classifies ledger entries (matches point_tx_type enum)
type TransactionType string

const (
	TransactionTypeTopUp      TransactionType = "topup"
	TransactionTypeAdjustment TransactionType = "adjustment"
)

// PointTransaction is one entry of the points ledger
type PointTransaction struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Amount    int64           `db:"amount"`
	Type      TransactionType `db:"type"`
	AdminID   uuid.NullUUID   `db:"admin_id"`
	CreatedAt time.Time       `db:"created_at"`
}
