package photobooth

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status of a photobooth
type Status string

const (
	StatusAvailable   Status = "available"
	StatusBusy        Status = "busy"
	StatusMaintenance Status = "maintenance"
	StatusOffline     Status = "offline"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusBusy, StatusMaintenance, StatusOffline:
		return true
	}
	return false
}

// Photobooth represents a physical booth
type Photobooth struct {
	ID               uuid.UUID      `db:"id"`
	Name             string         `db:"name"`
	Location         sql.NullString `db:"location"`
	Status           Status         `db:"status"`
	CurrentSessionID uuid.NullUUID  `db:"current_session_id"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}
