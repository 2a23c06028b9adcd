package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edushare/backend/internal/app/models/dto"
	"github.com/edushare/backend/internal/app/services"
	"github.com/edushare/backend/internal/middleware"
)

// ResourceController handles the shared-resource catalog endpoints
type ResourceController struct {
	resourceService services.ResourceService
	authService     services.AuthService
	logger          zerolog.Logger
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService services.ResourceService, authService services.AuthService, logger zerolog.Logger) *ResourceController {
	return &ResourceController{
		resourceService: resourceService,
		authService:     authService,
		logger:          logger,
	}
}

// UploadInfo returns the upload constraints
func (c *ResourceController) UploadInfo(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(c.resourceService.UploadInfo()))
}

// Upload accepts a multipart form with metadata fields and a "file" part
func (c *ResourceController) Upload(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.CreateResourceRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid upload form")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A file is required")
		errorDetail = errorDetail.WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to open uploaded file")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to read uploaded file")
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resource, err := c.resourceService.Create(
		ctx.Request.Context(), userID, &req,
		fileHeader.Filename, contentType, file, fileHeader.Size,
	)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resource))
}

// List returns the catalog, newest first, with the session user when one is
// present.
func (c *ResourceController) List(ctx *gin.Context) {
	resources, err := c.resourceService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.ResourceListResponse{Resources: resources}

	if userID, ok := middleware.CurrentUserID(ctx); ok {
		profile, err := c.authService.GetProfile(ctx.Request.Context(), userID)
		if err == nil {
			response.User = profile.User
		}
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}
