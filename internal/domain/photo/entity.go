package photo

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Photo represents an uploaded capture
type Photo struct {
	ID           uuid.UUID      `db:"id"`
	SessionID    uuid.NullUUID  `db:"session_id"`
	ImageKey     string         `db:"image_key"`
	ImageURL     string         `db:"image_url"`
	ThumbnailKey sql.NullString `db:"thumbnail_key"`
	ThumbnailURL sql.NullString `db:"thumbnail_url"`
	Width        int            `db:"width"`
	Height       int            `db:"height"`
	Processed    bool           `db:"processed"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}
