package session

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
)

// Repository defines session data access
type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)
	List(ctx context.Context, p pagination.Params, f Filter) ([]*Session, int, error)
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListOverdue(ctx context.Context, now time.Time) ([]*Session, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
	CountActive(ctx context.Context) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates session repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, photobooth_id, user_id, status, max_photos, started_at, completed_at, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, s.ID, s.PhotoboothID, s.UserID, s.Status, s.MaxPhotos,
		s.StartedAt, s.CompletedAt, s.ExpiresAt, s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	var s Session
	err := r.db.GetContext(ctx, &s, `SELECT * FROM sessions WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context, p pagination.Params, f Filter) ([]*Session, int, error) {
	where := ""
	args := []interface{}{}

	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		cond := clause + "$" + strconv.Itoa(len(args))
		if where == "" {
			where = "WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}

	if f.Status != "" {
		add("status = ", f.Status)
	}
	if f.PhotoboothID.Valid {
		add("photobooth_id = ", f.PhotoboothID.UUID)
	}
	if f.UserID.Valid {
		add("user_id = ", f.UserID.UUID)
	}
	if !f.From.IsZero() {
		add("created_at >= ", f.From)
	}
	if !f.To.IsZero() {
		add("created_at <= ", f.To)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM sessions `+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, p.Limit, p.Offset())
	query := `SELECT * FROM sessions ` + where +
		` ORDER BY ` + p.OrderClause() +
		` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	var sessions []*Session
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (r *repository) Update(ctx context.Context, s *Session) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions
		SET status = $2, max_photos = $3, started_at = $4, completed_at = $5, expires_at = $6, updated_at = $7
		WHERE id = $1
	`, s.ID, s.Status, s.MaxPhotos, s.StartedAt, s.CompletedAt, s.ExpiresAt, s.UpdatedAt)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListOverdue returns non-terminal sessions whose expiry has passed
func (r *repository) ListOverdue(ctx context.Context, now time.Time) ([]*Session, error) {
	var sessions []*Session
	err := r.db.SelectContext(ctx, &sessions, `
		SELECT * FROM sessions
		WHERE status IN ($1, $2) AND expires_at < $3
	`, StatusPending, StatusActive, now)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT status, COUNT(*) FROM sessions GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *repository) CountActive(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM sessions WHERE status = $1`, StatusActive)
	return count, err
}
