package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/edushare/backend/internal/app/models"
	"github.com/edushare/backend/internal/app/models/dto"
	"github.com/edushare/backend/internal/app/repositories"
	"github.com/edushare/backend/internal/pkg/apperrors"
	"github.com/edushare/backend/internal/pkg/filestorage"
)

// MaxUploadSize caps an uploaded file at 20 MiB.
const MaxUploadSize int64 = 20 << 20

// resourceService implements ResourceService
type resourceService struct {
	resourceRepo repositories.IResourceRepository
	storage      filestorage.Storage
	logger       zerolog.Logger
}

// NewResourceService creates a new ResourceService
func NewResourceService(resourceRepo repositories.IResourceRepository, storage filestorage.Storage, logger zerolog.Logger) ResourceService {
	return &resourceService{
		resourceRepo: resourceRepo,
		storage:      storage,
		logger:       logger,
	}
}

// UploadInfo describes the constraints on uploads.
func (s *resourceService) UploadInfo() dto.UploadInfo {
	return dto.UploadInfo{
		Categories:  models.Categories,
		MaxFileSize: MaxUploadSize,
	}
}

// Create uploads the file to object storage first; the catalog row is only
// written once the object exists, so a storage failure leaves no dangling
// entry.
func (s *resourceService) Create(ctx context.Context, uploaderID int64, req *dto.CreateResourceRequest, filename, contentType string, body io.Reader, size int64) (*models.Resource, error) {
	if !models.IsValidCategory(req.Category) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
			fmt.Sprintf("category must be one of: %s", strings.Join(models.Categories, ", ")))
	}
	if size > MaxUploadSize {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "file exceeds the maximum upload size")
	}

	key := filestorage.BuildObjectKey(filename)

	info, err := s.storage.Upload(ctx, key, contentType, body, size)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("Object storage upload failed")
		return nil, apperrors.NewCustomError(apperrors.ErrStorageUnavailable, "file storage is unavailable, try again later")
	}

	resource := &models.Resource{
		Title:      req.Title,
		CourseName: req.CourseName,
		FileURL:    info.URL,
		Category:   req.Category,
		UploaderID: uploaderID,
	}
	if req.Description != "" {
		desc := req.Description
		resource.Description = &desc
	}

	id, err := s.resourceRepo.Create(ctx, resource)
	if err != nil {
		return nil, fmt.Errorf("error saving resource: %w", err)
	}
	resource.ID = id

	s.logger.Info().Int64("resourceID", id).Int64("uploaderID", uploaderID).Str("key", info.Key).Msg("Resource uploaded")
	return resource, nil
}

// List returns the catalog, newest first.
func (s *resourceService) List(ctx context.Context) ([]*dto.ResourceResponse, error) {
	details, err := s.resourceRepo.ListNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing resources: %w", err)
	}

	resources := make([]*dto.ResourceResponse, 0, len(details))
	for _, d := range details {
		resources = append(resources, &dto.ResourceResponse{
			ID:          d.ID,
			Title:       d.Title,
			CourseName:  d.CourseName,
			Description: d.Description,
			FileURL:     d.FileURL,
			Category:    d.Category,
			UploaderID:  d.UploaderID,
			Uploader:    d.Uploader,
			CreatedAt:   d.CreatedAt,
		})
	}

	return resources, nil
}
