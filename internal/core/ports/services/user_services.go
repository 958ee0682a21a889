package services

import (
	"context"

	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	"github.com/Finger-Lab/olgacolor-back/internal/dto"
)

// UserSvcFacade exposes registration and authentication.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	// Login verifies credentials and returns a signed JWT plus the user.
	Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error)
}
