package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ptbooth/ptbooth-api/internal/pkg/pagination"
)

// Repository defines user data access
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, p pagination.Params) ([]*User, int, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddPoints(ctx context.Context, id uuid.UUID, delta int64, adminID uuid.UUID) (*User, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, phone, address, points, payment_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Phone, u.Address,
		u.Points, u.PaymentCode, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) List(ctx context.Context, p pagination.Params) ([]*User, int, error) {
	where := ""
	args := []interface{}{}
	if p.Search != "" {
		where = `WHERE name ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+p.Search+"%")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users `+where, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM users ` + where + ` ORDER BY ` + p.OrderClause()
	if p.Search != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, p.Limit, p.Offset())

	var users []*User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *repository) Update(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET email = $2, name = $3, password_hash = $4, phone = $5, address = $6, updated_at = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Phone, u.Address, u.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrEmailExists
		}
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// newLedgerEntry builds the point_transactions row for a credit. Credits
// always originate from an admin; a nil admin ID is recorded as NULL.
func newLedgerEntry(userID uuid.UUID, delta int64, adminID uuid.UUID, at time.Time) PointTransaction {
	return PointTransaction{
		ID:        uuid.New(),
		UserID:    userID,
		Amount:    delta,
		Type:      TransactionTypeTopUp,
		AdminID:   uuid.NullUUID{UUID: adminID, Valid: adminID != uuid.Nil},
		CreatedAt: at,
	}
}

// AddPoints applies a point delta inside a transaction: the user row is
// locked, the balance updated, and a ledger entry recorded. The caller has
// already validated delta >= 1.
func (r *repository) AddPoints(ctx context.Context, id uuid.UUID, delta int64, adminID uuid.UUID) (*User, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var u User
	err = tx.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	u.Points += delta
	u.UpdatedAt = time.Now()
	_, err = tx.ExecContext(ctx, `UPDATE users SET points = $2, updated_at = $3 WHERE id = $1`,
		u.ID, u.Points, u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	entry := newLedgerEntry(u.ID, delta, adminID, u.UpdatedAt)
	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO point_transactions (id, user_id, amount, type, admin_id, created_at)
		VALUES (:id, :user_id, :amount, :type, :admin_id, :created_at)
	`, &entry)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &u, nil
}
