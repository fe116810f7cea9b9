package user

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewLedgerEntry(t *testing.T) {
	userID := uuid.New()
	adminID := uuid.New()
	at := time.Now()

	e := newLedgerEntry(userID, 250, adminID, at)
	if e.ID == uuid.Nil {
		t.Error("entry should get its own ID")
	}
	if e.UserID != userID {
		t.Errorf("expected user %s, got %s", userID, e.UserID)
	}
	if e.Amount != 250 {
		t.Errorf("expected amount 250, got %d", e.Amount)
	}
	if e.Type != TransactionTypeTopUp {
		t.Errorf("expected type %s, got %s", TransactionTypeTopUp, e.Type)
	}
	if !e.AdminID.Valid || e.AdminID.UUID != adminID {
		t.Errorf("entry should record the crediting admin, got %+v", e.AdminID)
	}
	if !e.CreatedAt.Equal(at) {
		t.Errorf("expected created_at %v, got %v", at, e.CreatedAt)
	}
}

func TestNewLedgerEntryNilAdmin(t *testing.T) {
	e := newLedgerEntry(uuid.New(), 10, uuid.Nil, time.Now())
	if e.AdminID.Valid {
		t.Error("nil admin should be recorded as NULL")
	}
}
