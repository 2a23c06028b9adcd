package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edushare/backend/internal/app/models"
	"github.com/edushare/backend/internal/pkg/apperrors"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, tx pgx.Tx, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user inside the given transaction and fills in the
// generated ID. Account creation shares a transaction with OTP cleanup.
func (r *UserRepository) Create(ctx context.Context, tx pgx.Tx, user *models.User) error {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO users (username, email, password, full_name, university, department, batch)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		user.Username, user.Email, user.Password, user.FullName,
		user.University, user.Department, user.Batch).Scan(&id, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}

	user.ID = id
	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, email, password, full_name, university, department, batch, created_at
		FROM users
		WHERE email = $1`,
		email).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.FullName,
		&user.University, &user.Department, &user.Batch, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by email: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT id, username, email, password, full_name, university, department, batch, created_at
		FROM users
		WHERE id = $1`,
		id).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.FullName,
		&user.University, &user.Department, &user.Batch, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by id: %w", err)
	}

	return user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		email).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}

// UsernameExists checks if a username is already taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
		username).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}

	return exists, nil
}
