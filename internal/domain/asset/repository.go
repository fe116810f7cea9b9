package asset

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
)

// Repository defines asset data access
type Repository interface {
	Create(ctx context.Context, a *Asset) error
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)
	List(ctx context.Context, p pagination.Params, typ Type, activeOnly bool) ([]*Asset, int, error)
	ListActive(ctx context.Context, typ Type) ([]*Asset, error)
	Update(ctx context.Context, a *Asset) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates asset repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Asset) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO assets (id, name, type, image_key, image_url, filter_type, scale, offset_y, anchor_idx, left_idx, right_idx, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, a.ID, a.Name, a.Type, a.ImageKey, a.ImageURL, a.FilterType,
		a.Scale, a.OffsetY, a.AnchorIdx, a.LeftIdx, a.RightIdx,
		a.IsActive, a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Asset, error) {
	var a Asset
	err := r.db.GetContext(ctx, &a, `SELECT * FROM assets WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *repository) List(ctx context.Context, p pagination.Params, typ Type, activeOnly bool) ([]*Asset, int, error) {
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

	if typ != "" {
		add("type = ", typ)
	}
	if activeOnly {
		add("is_active = ", true)
	}
	if p.Search != "" {
		add("name ILIKE ", "%"+p.Search+"%")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM assets `+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, p.Limit, p.Offset())
	query := `SELECT * FROM assets ` + where +
		` ORDER BY ` + p.OrderClause() +
		` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	var assets []*Asset
	if err := r.db.SelectContext(ctx, &assets, query, args...); err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}

func (r *repository) ListActive(ctx context.Context, typ Type) ([]*Asset, error) {
	var assets []*Asset
	var err error
	if typ == "" {
		err = r.db.SelectContext(ctx, &assets,
			`SELECT * FROM assets WHERE is_active ORDER BY created_at DESC`)
	} else {
		err = r.db.SelectContext(ctx, &assets,
			`SELECT * FROM assets WHERE is_active AND type = $1 ORDER BY created_at DESC`, typ)
	}
	if err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *repository) Update(ctx context.Context, a *Asset) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE assets
		SET name = $2, filter_type = $3, scale = $4, offset_y = $5,
		    anchor_idx = $6, left_idx = $7, right_idx = $8, is_active = $9, updated_at = $10
		WHERE id = $1
	`, a.ID, a.Name, a.FilterType, a.Scale, a.OffsetY,
		a.AnchorIdx, a.LeftIdx, a.RightIdx, a.IsActive, a.UpdatedAt)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAssetNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAssetNotFound
	}
	return nil
}
