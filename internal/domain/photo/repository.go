package photo

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
)

// Repository defines photo data access
type Repository interface {
	Create(ctx context.Context, p *Photo) error
	GetByID(ctx context.Context, id uuid.UUID) (*Photo, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Photo, error)
	List(ctx context.Context, p pagination.Params, sessionID uuid.NullUUID, processed *bool) ([]*Photo, int, error)
	Update(ctx context.Context, p *Photo) error
	Delete(ctx context.Context, id uuid.UUID) error
	AttachToSession(ctx context.Context, id, sessionID uuid.UUID) error
	CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
	CountByProcessed(ctx context.Context) (processed, unprocessed int, err error)
	BulkUpdateProcessed(ctx context.Context, ids []uuid.UUID, processed bool) (int, error)
	BulkDelete(ctx context.Context, ids []uuid.UUID) (int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates photo repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Photo) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO photos (id, session_id, image_key, image_url, thumbnail_key, thumbnail_url, width, height, processed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, p.ID, p.SessionID, p.ImageKey, p.ImageURL, p.ThumbnailKey, p.ThumbnailURL,
		p.Width, p.Height, p.Processed, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Photo, error) {
	var p Photo
	err := r.db.GetContext(ctx, &p, `SELECT * FROM photos WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*Photo, error) {
	var photos []*Photo
	err := r.db.SelectContext(ctx, &photos,
		`SELECT * FROM photos WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *repository) List(ctx context.Context, p pagination.Params, sessionID uuid.NullUUID, processed *bool) ([]*Photo, int, error) {
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

	if sessionID.Valid {
		add("session_id = ", sessionID.UUID)
	}
	if processed != nil {
		add("processed = ", *processed)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM photos `+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, p.Limit, p.Offset())
	query := `SELECT * FROM photos ` + where +
		` ORDER BY ` + p.OrderClause() +
		` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	var photos []*Photo
	if err := r.db.SelectContext(ctx, &photos, query, args...); err != nil {
		return nil, 0, err
	}
	return photos, total, nil
}

func (r *repository) Update(ctx context.Context, p *Photo) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE photos SET session_id = $2, processed = $3, updated_at = $4 WHERE id = $1
	`, p.ID, p.SessionID, p.Processed, p.UpdatedAt)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *repository) AttachToSession(ctx context.Context, id, sessionID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE photos SET session_id = $2, updated_at = NOW() WHERE id = $1`, id, sessionID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (r *repository) CountBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM photos WHERE session_id = $1`, sessionID)
	return count, err
}

func (r *repository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM photos WHERE created_at >= $1`, since)
	return count, err
}

func (r *repository) CountByProcessed(ctx context.Context) (int, int, error) {
	var processed, unprocessed int
	err := r.db.QueryRowxContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE processed),
			COUNT(*) FILTER (WHERE NOT processed)
		FROM photos
	`).Scan(&processed, &unprocessed)
	return processed, unprocessed, err
}

func (r *repository) BulkUpdateProcessed(ctx context.Context, ids []uuid.UUID, processed bool) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE photos SET processed = $2, updated_at = NOW() WHERE id = ANY($1)
	`, pq.Array(ids), processed)
	if err != nil {
		return 0, err
	}
	rows, err := res.RowsAffected()
	return int(rows), err
}

func (r *repository) BulkDelete(ctx context.Context, ids []uuid.UUID) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	rows, err := res.RowsAffected()
	return int(rows), err
}

func checkAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPhotoNotFound
	}
	return nil
}
