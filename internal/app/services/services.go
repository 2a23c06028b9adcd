package services

import (
	"context"
	"io"

	"github.com/edushare/backend/internal/app/models"
	"github.com/edushare/backend/internal/app/models/dto"
)

// AuthService drives the registration state machine and session handling
type AuthService interface {
	RegistrationInfo() dto.RegistrationInfo
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) (string, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
}

// ResourceService covers the uploaded-material catalog
type ResourceService interface {
	UploadInfo() dto.UploadInfo
	Create(ctx context.Context, uploaderID int64, req *dto.CreateResourceRequest, filename, contentType string, body io.Reader, size int64) (*models.Resource, error)
	List(ctx context.Context) ([]*dto.ResourceResponse, error)
}
