package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repositories sharing one connection pool
type Repositories struct {
	UserRepository     *UserRepository
	OTPRepository      *OTPRepository
	ResourceRepository *ResourceRepository
}

// NewRepositories creates all repositories over the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:     NewUserRepository(db),
		OTPRepository:      NewOTPRepository(db),
		ResourceRepository: NewResourceRepository(db),
	}
}
