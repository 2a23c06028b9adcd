package models

import "time"

// OTP is an ephemeral verification code keyed by email. It stays valid
// until superseded by a newer code or consumed by account creation.
type OTP struct {
	Email     string    `json:"email" db:"email"`
	Code      string    `json:"-" db:"code"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
