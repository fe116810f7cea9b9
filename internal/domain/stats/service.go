package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/ptbooth/ptbooth-api/internal/domain/photo"
	"github.com/ptbooth/ptbooth-api/internal/domain/photobooth"
	"github.com/ptbooth/ptbooth-api/internal/domain/session"
)

const (
	realtimeCacheKey = "stats:realtime"
	realtimeCacheTTL = 5 * time.Second
)

// Overview aggregates counters for the dashboard landing page
type Overview struct {
	Photobooths map[photobooth.Status]int `json:"photobooths"`
	Sessions    map[session.Status]int    `json:"sessions"`
	Photos      PhotoCounts               `json:"photos"`
}

// PhotoCounts splits the photo catalogue by processed state
type PhotoCounts struct {
	Processed   int `json:"processed"`
	Unprocessed int `json:"unprocessed"`
}

// Realtime is the short-TTL live view
type Realtime struct {
	ActiveSessions int   `json:"activeSessions"`
	PhotosToday    int   `json:"photosToday"`
	UptimeSeconds  int64 `json:"uptimeSeconds"`
}

// ChartPoint is one day in the sessions chart
type ChartPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// BoothUtilization summarizes one booth's session activity
type BoothUtilization struct {
	PhotoboothID      string            `json:"photoboothId"`
	Name              string            `json:"name"`
	Status            photobooth.Status `json:"status"`
	TotalSessions     int               `json:"totalSessions"`
	CompletedSessions int               `json:"completedSessions"`
}

// Service computes dashboard statistics
type Service struct {
	db        *sqlx.DB
	booths    photobooth.Repository
	sessions  session.Repository
	photos    photo.Repository
	rdb       *redis.Client
	startedAt time.Time
}

// NewService creates stats service. rdb may be nil; realtime stats are then
// computed on every request.
func NewService(db *sqlx.DB, booths photobooth.Repository, sessions session.Repository, photos photo.Repository, rdb *redis.Client) *Service {
	return &Service{
		db:        db,
		booths:    booths,
		sessions:  sessions,
		photos:    photos,
		rdb:       rdb,
		startedAt: time.Now(),
	}
}

// Overview returns counters by booth status, session status and photo state
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	boothCounts, err := s.booths.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	sessionCounts, err := s.sessions.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	processed, unprocessed, err := s.photos.CountByProcessed(ctx)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Photobooths: boothCounts,
		Sessions:    sessionCounts,
		Photos:      PhotoCounts{Processed: processed, Unprocessed: unprocessed},
	}, nil
}

// Realtime returns the live view, cached briefly in Redis so a dashboard
// polling every second doesn't hammer Postgres.
func (s *Service) Realtime(ctx context.Context) (*Realtime, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, realtimeCacheKey).Bytes(); err == nil {
			var cached Realtime
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	active, err := s.sessions.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	midnight := time.Now().Truncate(24 * time.Hour)
	photosToday, err := s.photos.CountSince(ctx, midnight)
	if err != nil {
		return nil, err
	}

	rt := &Realtime{
		ActiveSessions: active,
		PhotosToday:    photosToday,
		UptimeSeconds:  int64(time.Since(s.startedAt).Seconds()),
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(rt); err == nil {
			if err := s.rdb.Set(ctx, realtimeCacheKey, raw, realtimeCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("failed to cache realtime stats")
			}
		}
	}
	return rt, nil
}

// SessionsChart returns per-day session counts over the trailing window
func (s *Service) SessionsChart(ctx context.Context, days int) ([]ChartPoint, error) {
	if days < 1 {
		days = 7
	}
	if days > 90 {
		days = 90
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT date_trunc('day', created_at)::date AS day, COUNT(*)
		FROM sessions
		WHERE created_at >= NOW() - ($1 || ' days')::interval
		GROUP BY day
		ORDER BY day
	`, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := []ChartPoint{}
	for rows.Next() {
		var day time.Time
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, err
		}
		points = append(points, ChartPoint{Date: day.Format("2006-01-02"), Count: count})
	}
	return points, rows.Err()
}

// Utilization returns per-booth session totals
func (s *Service) Utilization(ctx context.Context) ([]BoothUtilization, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT b.id, b.name, b.status,
			COUNT(s.id) AS total,
			COUNT(s.id) FILTER (WHERE s.status = 'completed') AS completed
		FROM photobooths b
		LEFT JOIN sessions s ON s.photobooth_id = b.id
		GROUP BY b.id, b.name, b.status
		ORDER BY b.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []BoothUtilization{}
	for rows.Next() {
		var u BoothUtilization
		if err := rows.Scan(&u.PhotoboothID, &u.Name, &u.Status, &u.TotalSessions, &u.CompletedSessions); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
