package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edushare/backend/internal/app/models"
	"github.com/edushare/backend/internal/app/models/dto"
	"github.com/edushare/backend/internal/app/repositories"
	"github.com/edushare/backend/internal/pkg/apperrors"
	"github.com/edushare/backend/internal/pkg/filestorage"
)

type fakeStorage struct {
	uploads   []string
	uploadErr error
}

func (f *fakeStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (*filestorage.ObjectInfo, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploads = append(f.uploads, key)
	return &filestorage.ObjectInfo{
		Key:      key,
		URL:      "http://storage.local/notes/" + key,
		Size:     size,
		MimeType: contentType,
	}, nil
}

func newResourceFixture() (*fakeResourceRepo, *fakeStorage, ResourceService) {
	repo := newFakeResourceRepo()
	storage := &fakeStorage{}
	svc := NewResourceService(repo, storage, zerolog.Nop())
	return repo, storage, svc
}

func uploadRequest() *dto.CreateResourceRequest {
	return &dto.CreateResourceRequest{
		Title:      "Week 3 Lecture Notes",
		Category:   models.CategoryNote,
		CourseName: "CSE 101",
	}
}

func TestCreate_UploadsThenSaves(t *testing.T) {
	repo, storage, svc := newResourceFixture()
	body := strings.NewReader("pdf bytes")

	resource, err := svc.Create(context.Background(), 42, uploadRequest(),
		"week 3 notes.pdf", "application/pdf", body, int64(body.Len()))

	require.NoError(t, err)
	require.NotNil(t, resource)
	assert.Equal(t, int64(42), resource.UploaderID)
	assert.NotZero(t, resource.ID)
	require.Len(t, storage.uploads, 1)
	assert.Contains(t, storage.uploads[0], "week_3_notes.pdf")
	assert.Equal(t, "http://storage.local/notes/"+storage.uploads[0], resource.FileURL)
	require.Len(t, repo.created, 1)
}

func TestCreate_InvalidCategory(t *testing.T) {
	repo, storage, svc := newResourceFixture()
	req := uploadRequest()
	req.Category = "memes"

	_, err := svc.Create(context.Background(), 42, req,
		"notes.pdf", "application/pdf", strings.NewReader("x"), 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, storage.uploads)
	assert.Empty(t, repo.created)
}

func TestCreate_FileTooLarge(t *testing.T) {
	_, storage, svc := newResourceFixture()

	_, err := svc.Create(context.Background(), 42, uploadRequest(),
		"huge.pdf", "application/pdf", strings.NewReader("x"), MaxUploadSize+1)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, storage.uploads)
}

func TestCreate_StorageFailureLeavesNoRow(t *testing.T) {
	repo, storage, svc := newResourceFixture()
	storage.uploadErr = errors.New("connection refused")

	_, err := svc.Create(context.Background(), 42, uploadRequest(),
		"notes.pdf", "application/pdf", strings.NewReader("x"), 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
	assert.Empty(t, repo.created)
}

func TestCreate_OptionalDescription(t *testing.T) {
	repo, _, svc := newResourceFixture()
	req := uploadRequest()
	req.Description = "covers sorting and heaps"

	resource, err := svc.Create(context.Background(), 42, req,
		"notes.pdf", "application/pdf", strings.NewReader("x"), 1)

	require.NoError(t, err)
	require.NotNil(t, resource.Description)
	assert.Equal(t, "covers sorting and heaps", *resource.Description)

	resource2, err := svc.Create(context.Background(), 42, uploadRequest(),
		"notes2.pdf", "application/pdf", strings.NewReader("x"), 1)
	require.NoError(t, err)
	assert.Nil(t, resource2.Description)
	assert.Len(t, repo.created, 2)
}

func TestList_MapsCatalogRows(t *testing.T) {
	repo, _, svc := newResourceFixture()
	now := time.Now()
	repo.listOut = []*repositories.ResourceDetails{
		{ID: 2, Title: "Newer", CourseName: "CSE 101", Category: models.CategoryNote, UploaderID: 1, Uploader: "alice", CreatedAt: now},
		{ID: 1, Title: "Older", CourseName: "CSE 101", Category: models.CategoryQuestion, UploaderID: 2, Uploader: "bob", CreatedAt: now.Add(-time.Hour)},
	}

	resources, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, resources, 2)
	assert.Equal(t, "Newer", resources[0].Title)
	assert.Equal(t, "alice", resources[0].Uploader)
	assert.Equal(t, "Older", resources[1].Title)
}

func TestList_EmptyCatalog(t *testing.T) {
	_, _, svc := newResourceFixture()

	resources, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, resources)
	assert.Empty(t, resources)
}

func TestUploadInfo(t *testing.T) {
	_, _, svc := newResourceFixture()

	info := svc.UploadInfo()

	assert.Equal(t, models.Categories, info.Categories)
	assert.Equal(t, MaxUploadSize, info.MaxFileSize)
}
