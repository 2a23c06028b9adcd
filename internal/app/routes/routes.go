package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edushare/backend/internal/app/controllers"
	"github.com/edushare/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	resourceController *controllers.ResourceController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Catalog is public; the session user is attached when present
	router.GET("/", authMiddleware.OptionalAuth(), resourceController.List)

	// --- Public registration and login routes ---
	router.GET("/register", authController.RegistrationInfo)
	router.POST("/register", authController.Register)
	router.POST("/send-otp", authController.SendOTP)
	router.POST("/verify-otp", authController.VerifyOTP)
	router.POST("/login", authController.Login)
	router.GET("/logout", authController.Logout)

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.RequireAuth())
	{
		authenticated.GET("/login", authController.Session)
		authenticated.GET("/profile", authController.Profile)
		authenticated.GET("/upload", resourceController.UploadInfo)
		authenticated.POST("/upload", resourceController.Upload)
	}
}
