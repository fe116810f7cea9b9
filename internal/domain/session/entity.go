package session

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status of a capture session
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// terminal statuses accept no further transitions
func (s Status) terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusExpired
}

// Session represents one capture session on a booth
type Session struct {
	ID           uuid.UUID     `db:"id"`
	PhotoboothID uuid.UUID     `db:"photobooth_id"`
	UserID       uuid.NullUUID `db:"user_id"`
	Status       Status        `db:"status"`
	MaxPhotos    int           `db:"max_photos"`
	StartedAt    sql.NullTime  `db:"started_at"`
	CompletedAt  sql.NullTime  `db:"completed_at"`
	ExpiresAt    time.Time     `db:"expires_at"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}
