package photobooth

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
)

// Repository defines photobooth data access
type Repository interface {
	Create(ctx context.Context, b *Photobooth) error
	GetByID(ctx context.Context, id uuid.UUID) (*Photobooth, error)
	List(ctx context.Context, p pagination.Params, status Status) ([]*Photobooth, int, error)
	Update(ctx context.Context, b *Photobooth) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
	SetCurrentSession(ctx context.Context, id uuid.UUID, sessionID uuid.NullUUID, status Status) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates photobooth repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Photobooth) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO photobooths (id, name, location, status, current_session_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, b.ID, b.Name, b.Location, b.Status, b.CurrentSessionID, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrNameExists
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Photobooth, error) {
	var b Photobooth
	err := r.db.GetContext(ctx, &b, `SELECT * FROM photobooths WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) List(ctx context.Context, p pagination.Params, status Status) ([]*Photobooth, int, error) {
	where := ""
	args := []interface{}{}
	n := 1
	if status != "" {
		where = `WHERE status = $1`
		args = append(args, status)
		n++
	}
	if p.Search != "" {
		clause := `(name ILIKE $` + strconv.Itoa(n) + ` OR location ILIKE $` + strconv.Itoa(n) + `)`
		if where == "" {
			where = `WHERE ` + clause
		} else {
			where += ` AND ` + clause
		}
		args = append(args, "%"+p.Search+"%")
		n++
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM photobooths `+where, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM photobooths ` + where +
		` ORDER BY ` + p.OrderClause() +
		` LIMIT $` + strconv.Itoa(n) + ` OFFSET $` + strconv.Itoa(n+1)
	args = append(args, p.Limit, p.Offset())

	var booths []*Photobooth
	if err := r.db.SelectContext(ctx, &booths, query, args...); err != nil {
		return nil, 0, err
	}
	return booths, total, nil
}

func (r *repository) Update(ctx context.Context, b *Photobooth) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE photobooths SET name = $2, location = $3, updated_at = $4 WHERE id = $1
	`, b.ID, b.Name, b.Location, b.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrNameExists
		}
		return err
	}
	return checkAffected(res)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM photobooths WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *repository) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE photobooths SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *repository) SetCurrentSession(ctx context.Context, id uuid.UUID, sessionID uuid.NullUUID, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE photobooths SET current_session_id = $2, status = $3, updated_at = NOW() WHERE id = $1
	`, id, sessionID, status)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *repository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT status, COUNT(*) FROM photobooths GROUP BY status`)
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

func checkAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBoothNotFound
	}
	return nil
}

