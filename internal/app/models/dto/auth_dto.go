package dto

import "github.com/edushare/backend/internal/app/models"

// SendOTPRequest asks for a verification code to be mailed
type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendOTPResponse acknowledges OTP issuance
type SendOTPResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// VerifyOTPRequest submits the mailed code for an email
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// VerifyOTPResponse carries the registration ticket required to create the
// account.
type VerifyOTPResponse struct {
	Ticket string `json:"ticket"`
}

// RegisterRequest is the full registration form
type RegisterRequest struct {
	Ticket     string `json:"ticket" binding:"required"`
	FullName   string `json:"fullName" binding:"required"`
	Username   string `json:"username" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	University string `json:"university" binding:"required"`
	Department string `json:"department"`
	Batch      string `json:"batch"`
}

// RegisterResponse returns the created account
type RegisterResponse struct {
	User *models.User `json:"user"`
}

// RegistrationInfo describes what a registration must satisfy
type RegistrationInfo struct {
	AllowedDomains    []string `json:"allowedDomains"`
	PasswordMinLength int      `json:"passwordMinLength"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse represents an established session
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expiresAt"`
	User      *models.User `json:"user"`
}

// ProfileResponse is the current user together with their uploads
type ProfileResponse struct {
	User    *models.User       `json:"user"`
	Uploads []*models.Resource `json:"uploads"`
}
