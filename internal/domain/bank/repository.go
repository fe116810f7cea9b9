package bank

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines bank profile data access
type Repository interface {
	Get(ctx context.Context) (*BankInfo, error)
	Upsert(ctx context.Context, b *BankInfo) error
	Update(ctx context.Context, b *BankInfo) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates bank repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*BankInfo, error) {
	var b BankInfo
	err := r.db.GetContext(ctx, &b, `SELECT * FROM bank_info ORDER BY updated_at DESC LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// Upsert replaces whatever profile exists with the given one. The table holds
// at most one row, so the delete-then-insert runs in a transaction.
func (r *repository) Upsert(ctx context.Context, b *BankInfo) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bank_info`); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bank_info (id, bank_code, bank_name, account_number, account_holder_name, branch, static_qr_code_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, b.ID, b.BankCode, b.BankName, b.AccountNumber, b.AccountHolderName,
		b.Branch, b.StaticQRCodeURL, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) Update(ctx context.Context, b *BankInfo) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE bank_info
		SET bank_code = $2, bank_name = $3, account_number = $4, account_holder_name = $5,
		    branch = $6, static_qr_code_url = $7, updated_at = $8
		WHERE id = $1
	`, b.ID, b.BankCode, b.BankName, b.AccountNumber, b.AccountHolderName,
		b.Branch, b.StaticQRCodeURL, b.UpdatedAt)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBankInfoNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bank_info WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBankInfoNotFound
	}
	return nil
}
