package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrWrongPurpose = errors.New("token issued for a different purpose")
)

// Token purposes. A session token identifies a logged-in user; a
// registration ticket proves a completed OTP verification for one email.
const (
	PurposeSession      = "session"
	PurposeRegistration = "registration"
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey   string
	SessionExp  time.Duration
	TicketExp   time.Duration
	TokenIssuer string
}

// JWTService issues and validates signed session tokens and registration
// tickets.
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
	}
}

// Claims defines token content shared by sessions and registration tickets.
type Claims struct {
	UserID  int64  `json:"userId,omitempty"`
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// GenerateSessionToken creates a signed session token for a logged-in user.
func (s *JWTService) GenerateSessionToken(userID int64, email string) (string, time.Time, error) {
	expiry := time.Now().Add(s.config.SessionExp)

	claims := &Claims{
		UserID:  userID,
		Email:   email,
		Purpose: PurposeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.config.TokenIssuer,
			Subject:   fmt.Sprintf("%d", userID),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, expiry, nil
}

// GenerateRegistrationTicket creates a short-lived ticket bound to a
// verified email address. Account creation requires presenting it back.
func (s *JWTService) GenerateRegistrationTicket(email string) (string, error) {
	claims := &Claims{
		Email:   email,
		Purpose: PurposeRegistration,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.TicketExp)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.config.TokenIssuer,
			Subject:   email,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign registration ticket: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and validates a token of the given purpose.
func (s *JWTService) ValidateToken(tokenString, purpose string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	if claims.Email == "" {
		return nil, ErrInvalidToken
	}
	if purpose == PurposeSession && claims.UserID <= 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
