package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IOTPRepository defines the interface for one-time-code operations
type IOTPRepository interface {
	Supersede(ctx context.Context, email, code string) error
	Exists(ctx context.Context, email, code string) (bool, error)
	DeleteByEmail(ctx context.Context, tx pgx.Tx, email string) error
}

// OTPRepository handles database operations for one-time codes
type OTPRepository struct {
	db *pgxpool.Pool
}

// NewOTPRepository creates a new OTPRepository
func NewOTPRepository(db *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{db: db}
}

// Supersede replaces any stored code for the email with a fresh one.
// Delete and insert run in one transaction so at most one code survives.
func (r *OTPRepository) Supersede(ctx context.Context, email, code string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting otp transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	delSQL, delArgs, err := squirrel.Delete("otps").
		Where("email = ?", email).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err = tx.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("error deleting old otp: %w", err)
	}

	insSQL, insArgs, err := squirrel.Insert("otps").
		Columns("email", "code").
		Values(email, code).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err = tx.Exec(ctx, insSQL, insArgs...); err != nil {
		return fmt.Errorf("error storing otp: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing otp transaction: %w", err)
	}

	return nil
}

// Exists reports whether a row matches both email and code exactly.
func (r *OTPRepository) Exists(ctx context.Context, email, code string) (bool, error) {
	sql, args, err := squirrel.Select("1").
		From("otps").
		Where(squirrel.Eq{"email": email, "code": code}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error looking up otp: %w", err)
	}

	return true, nil
}

// DeleteByEmail removes all codes for an email. When tx is non-nil the
// delete joins that transaction (used during account creation).
func (r *OTPRepository) DeleteByEmail(ctx context.Context, tx pgx.Tx, email string) error {
	sql, args, err := squirrel.Delete("otps").
		Where("email = ?", email).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if tx != nil {
		_, err = tx.Exec(ctx, sql, args...)
	} else {
		_, err = r.db.Exec(ctx, sql, args...)
	}
	if err != nil {
		return fmt.Errorf("error deleting otp rows: %w", err)
	}

	return nil
}
