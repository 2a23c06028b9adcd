// Package bootstrap wires configuration, storage and the HTTP surface
// together.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/edushare/backend/internal/app/controllers"
	appMigrations "github.com/edushare/backend/internal/app/migrations"
	appRepos "github.com/edushare/backend/internal/app/repositories"
	appRoutes "github.com/edushare/backend/internal/app/routes"
	appServices "github.com/edushare/backend/internal/app/services"
	"github.com/edushare/backend/internal/config"
	"github.com/edushare/backend/internal/db"
	appMiddleware "github.com/edushare/backend/internal/middleware"
	pkgAuth "github.com/edushare/backend/internal/pkg/auth"
	"github.com/edushare/backend/internal/pkg/email"
	"github.com/edushare/backend/internal/pkg/filestorage"
	"github.com/edushare/backend/internal/pkg/helpers"
	"github.com/edushare/backend/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        appServices.AuthService
	ResourceService    appServices.ResourceService
	AuthController     *appControllers.AuthController
	ResourceController *appControllers.ResourceController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	Mailer             email.Mailer
	Storage            filestorage.Storage
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	storage, err := filestorage.NewS3Storage(context.Background(), filestorage.S3Config{
		Endpoint:      cfg.Storage.Endpoint,
		Region:        cfg.Storage.Region,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		Bucket:        cfg.Storage.Bucket,
		UploadTimeout: helpers.ParseDuration(cfg.Storage.UploadTimeout, 30*time.Second),
	}, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize object storage")
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	deps.Storage = storage

	deps.Mailer = email.NewSMTPMailer(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		SessionExp:  helpers.ParseDuration(cfg.JWT.SessionExpiration, 24*time.Hour),
		TicketExp:   helpers.ParseDuration(cfg.JWT.TicketExpiration, 15*time.Minute),
		TokenIssuer: cfg.JWT.Issuer,
	})

	runTx := func(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
		return db.WithTransaction(ctx, dbPool, fn)
	}

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.OTPRepository,
		deps.Repos.ResourceRepository,
		deps.Mailer,
		deps.JWTService,
		cfg.Registration.AllowedDomains,
		runTx,
		lgr,
	)

	deps.ResourceService = appServices.NewResourceService(deps.Repos.ResourceRepository, deps.Storage, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ResourceController = appControllers.NewResourceController(deps.ResourceService, deps.AuthService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ResourceController,
		deps.AuthMiddleware,
	)

	return router
}
