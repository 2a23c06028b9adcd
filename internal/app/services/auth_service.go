package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/edushare/backend/internal/app/models"
	"github.com/edushare/backend/internal/app/models/dto"
	"github.com/edushare/backend/internal/app/repositories"
	"github.com/edushare/backend/internal/pkg/apperrors"
	pkgauth "github.com/edushare/backend/internal/pkg/auth"
	"github.com/edushare/backend/internal/pkg/email"
	"github.com/edushare/backend/internal/pkg/validation"
)

// TxRunner executes fn within a database transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error

// authService implements AuthService
type authService struct {
	userRepo       repositories.IUserRepository
	otpRepo        repositories.IOTPRepository
	resourceRepo   repositories.IResourceRepository
	mailer         email.Mailer
	jwtService     *pkgauth.JWTService
	allowedDomains []string
	runTx          TxRunner
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	otpRepo repositories.IOTPRepository,
	resourceRepo repositories.IResourceRepository,
	mailer email.Mailer,
	jwtService *pkgauth.JWTService,
	allowedDomains []string,
	runTx TxRunner,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		otpRepo:        otpRepo,
		resourceRepo:   resourceRepo,
		mailer:         mailer,
		jwtService:     jwtService,
		allowedDomains: allowedDomains,
		runTx:          runTx,
		logger:         logger,
	}
}

// RegistrationInfo describes registration requirements.
func (s *authService) RegistrationInfo() dto.RegistrationInfo {
	return dto.RegistrationInfo{
		AllowedDomains:    s.allowedDomains,
		PasswordMinLength: validation.PasswordMinLength,
	}
}

// SendOTP runs the first registration step: domain check, duplicate check,
// supersede any old code, store and mail a new one. A failed mail send is
// logged but does not undo issuance.
func (s *authService) SendOTP(ctx context.Context, candidate string) error {
	candidate = strings.ToLower(strings.TrimSpace(candidate))

	if !validation.IsValidEmail(candidate) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid email address")
	}

	if !validation.IsAllowedDomain(candidate, s.allowedDomains) {
		return apperrors.NewCustomError(apperrors.ErrEmailDomainNotAllowed,
			fmt.Sprintf("email must belong to an institutional domain (%s)", strings.Join(s.allowedDomains, ", ")))
	}

	exists, err := s.userRepo.EmailExists(ctx, candidate)
	if err != nil {
		return fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "This email is already registered")
	}

	code, err := email.GenerateOTP()
	if err != nil {
		return fmt.Errorf("error generating otp: %w", err)
	}

	if err := s.otpRepo.Supersede(ctx, candidate, code); err != nil {
		return fmt.Errorf("error storing otp: %w", err)
	}

	if err := s.mailer.SendOTPEmail(candidate, code); err != nil {
		// The code is valid even if delivery failed; the user can retry.
		s.logger.Warn().Err(err).Str("email", candidate).Msg("OTP email delivery failed")
	}

	return nil
}

// VerifyOTP checks the submitted (email, code) pair and, on a match,
// returns a short-lived registration ticket bound to the email. The code
// itself is not consumed here; account creation deletes it.
func (s *authService) VerifyOTP(ctx context.Context, candidate, code string) (string, error) {
	candidate = strings.ToLower(strings.TrimSpace(candidate))

	match, err := s.otpRepo.Exists(ctx, candidate, code)
	if err != nil {
		return "", fmt.Errorf("error looking up otp: %w", err)
	}
	if !match {
		return "", apperrors.NewCustomError(apperrors.ErrOTPMismatch, "Invalid Code! Try again.")
	}

	ticket, err := s.jwtService.GenerateRegistrationTicket(candidate)
	if err != nil {
		return "", fmt.Errorf("error issuing registration ticket: %w", err)
	}

	return ticket, nil
}

// Register completes the state machine: the ticket proves the OTP step ran
// for this email, then the user row is created and the email's OTP rows are
// deleted in one transaction.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	reqEmail := strings.ToLower(strings.TrimSpace(req.Email))

	claims, err := s.jwtService.ValidateToken(req.Ticket, pkgauth.PurposeRegistration)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidTicket, "registration ticket is invalid or expired")
	}
	if !strings.EqualFold(claims.Email, reqEmail) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidTicket, "registration ticket was issued for a different email")
	}

	if !validation.IsValidUsername(req.Username) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
			"username must be 3-30 characters of lowercase letters, digits or underscore")
	}

	if !validation.CheckPassword(req.Password) {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed,
			"password must be at least 8 characters with a letter and a digit")
	}

	taken, err := s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if taken {
		return nil, apperrors.NewCustomError(apperrors.ErrUsernameAlreadyExists, "This username is already taken")
	}

	exists, err := s.userRepo.EmailExists(ctx, reqEmail)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "This email is already registered")
	}

	hashed, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username:   req.Username,
		Email:      reqEmail,
		Password:   hashed,
		FullName:   req.FullName,
		University: req.University,
		Department: req.Department,
		Batch:      req.Batch,
	}

	err = s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}
		return s.otpRepo.DeleteByEmail(ctx, tx, reqEmail)
	})
	if err != nil {
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	s.logger.Info().Str("email", user.Email).Str("username", user.Username).Int64("userID", user.ID).Msg("Account created")
	return user, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	reqEmail := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, reqEmail)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password")
	}

	if !pkgauth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid email or password")
	}

	token, expiresAt, err := s.jwtService.GenerateSessionToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("error issuing session token: %w", err)
	}

	return &dto.SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		User:      user,
	}, nil
}

// GetProfile returns the user record plus their uploads.
func (s *authService) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	uploads, err := s.resourceRepo.ListByUploader(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing uploads: %w", err)
	}

	return &dto.ProfileResponse{User: user, Uploads: uploads}, nil
}
