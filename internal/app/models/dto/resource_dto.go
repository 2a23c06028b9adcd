package dto

import (
	"time"

	"github.com/edushare/backend/internal/app/models"
)

// CreateResourceRequest is the multipart upload form (file part handled
// separately by the controller)
type CreateResourceRequest struct {
	Title       string `form:"title" binding:"required"`
	Category    string `form:"category" binding:"required"`
	CourseName  string `form:"courseName" binding:"required"`
	Description string `form:"description"`
}

// ResourceResponse is one catalog entry with the uploader's username joined
// in.
type ResourceResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	CourseName  string    `json:"courseName"`
	Description *string   `json:"description,omitempty"`
	FileURL     string    `json:"fileUrl"`
	Category    string    `json:"category"`
	UploaderID  int64     `json:"uploaderId"`
	Uploader    string    `json:"uploader"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ResourceListResponse is the newest-first catalog, optionally with the
// current session user.
type ResourceListResponse struct {
	Resources []*ResourceResponse `json:"resources"`
	User      *models.User        `json:"user,omitempty"`
}

// UploadInfo describes the constraints on uploads
type UploadInfo struct {
	Categories  []string `json:"categories"`
	MaxFileSize int64    `json:"maxFileSize"`
}
