package repositories

import (
	"context"

	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
)

// UserReader defines read operations for users.
type UserReader interface {
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	// SaveUser inserts a new user; a duplicate email yields apperrors.ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
