package asset

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Type of overlay asset
type Type string

const (
	TypeFrame   Type = "frame"
	TypeFilter  Type = "filter"
	TypeSticker Type = "sticker"
)

// IsValid reports whether t is a known asset type
func (t Type) IsValid() bool {
	switch t {
	case TypeFrame, TypeFilter, TypeSticker:
		return true
	}
	return false
}

// Asset is an overlay shipped to kiosks: a frame, filter or sticker image.
// Filter assets carry face-placement properties the kiosk renderer reads.
type Asset struct {
	ID         uuid.UUID       `db:"id"`
	Name       string          `db:"name"`
	Type       Type            `db:"type"`
	ImageKey   string          `db:"image_key"`
	ImageURL   string          `db:"image_url"`
	FilterType sql.NullString  `db:"filter_type"`
	Scale      sql.NullFloat64 `db:"scale"`
	OffsetY    sql.NullFloat64 `db:"offset_y"`
	AnchorIdx  sql.NullInt32   `db:"anchor_idx"`
	LeftIdx    sql.NullInt32   `db:"left_idx"`
	RightIdx   sql.NullInt32   `db:"right_idx"`
	IsActive   bool            `db:"is_active"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}
