package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edushare/backend/internal/app/models"
	"github.com/edushare/backend/internal/pkg/apperrors"
)

// ResourceDetails is a catalog row with the uploader's username joined in.
type ResourceDetails struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	CourseName  string    `db:"course_name" json:"courseName"`
	Description *string   `db:"description" json:"description,omitempty"`
	FileURL     string    `db:"file_url" json:"fileUrl"`
	Category    string    `db:"category" json:"category"`
	UploaderID  int64     `db:"uploader_id" json:"uploaderId"`
	Uploader    string    `db:"uploader" json:"uploader"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// IResourceRepository defines the interface for resource catalog operations
type IResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) (int64, error)
	ListNewestFirst(ctx context.Context) ([]*ResourceDetails, error)
	ListByUploader(ctx context.Context, uploaderID int64) ([]*models.Resource, error)
	GetByID(ctx context.Context, id int64) (*ResourceDetails, error)
}

// ResourceRepository handles database operations for resources.
type ResourceRepository struct {
	db *pgxpool.Pool
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// selectDetailsQuery builds the catalog select with the uploader join
func (r *ResourceRepository) selectDetailsQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"r.id", "r.title", "r.course_name", "r.description", "r.file_url",
		"r.category", "r.uploader_id", "u.username as uploader", "r.created_at",
	).From("resources r").
		Join("users u ON r.uploader_id = u.id").
		PlaceholderFormat(squirrel.Dollar)
}

// scanDetails scans a row into ResourceDetails
func scanDetails(row pgx.Row) (*ResourceDetails, error) {
	var d ResourceDetails
	err := row.Scan(
		&d.ID, &d.Title, &d.CourseName, &d.Description, &d.FileURL,
		&d.Category, &d.UploaderID, &d.Uploader, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error scanning resource: %w", err)
	}
	return &d, nil
}

// Create inserts a new resource row and returns its ID.
func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) (int64, error) {
	sql, args, err := squirrel.Insert("resources").
		Columns("title", "course_name", "description", "file_url", "category", "uploader_id").
		Values(resource.Title, resource.CourseName, resource.Description,
			resource.FileURL, resource.Category, resource.UploaderID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating resource: %w", err)
	}

	return id, nil
}

// ListNewestFirst returns the full catalog ordered by creation time
// descending.
func (r *ResourceRepository) ListNewestFirst(ctx context.Context) ([]*ResourceDetails, error) {
	sql, args, err := r.selectDetailsQuery().
		OrderBy("r.created_at DESC", "r.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing resources: %w", err)
	}
	defer rows.Close()

	var resources []*ResourceDetails
	for rows.Next() {
		d, err := scanDetails(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating resources: %w", err)
	}

	return resources, nil
}

// ListByUploader returns one user's uploads, newest first.
func (r *ResourceRepository) ListByUploader(ctx context.Context, uploaderID int64) ([]*models.Resource, error) {
	sql, args, err := squirrel.Select(
		"id", "title", "course_name", "description", "file_url",
		"category", "uploader_id", "created_at",
	).From("resources").
		Where(squirrel.Eq{"uploader_id": uploaderID}).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing uploads: %w", err)
	}
	defer rows.Close()

	var resources []*models.Resource
	for rows.Next() {
		res := &models.Resource{}
		err := rows.Scan(
			&res.ID, &res.Title, &res.CourseName, &res.Description, &res.FileURL,
			&res.Category, &res.UploaderID, &res.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning upload: %w", err)
		}
		resources = append(resources, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating uploads: %w", err)
	}

	return resources, nil
}

// GetByID retrieves a single resource with uploader details.
func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*ResourceDetails, error) {
	sql, args, err := r.selectDetailsQuery().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	return scanDetails(r.db.QueryRow(ctx, sql, args...))
}
