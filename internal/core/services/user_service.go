package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Finger-Lab/olgacolor-back/internal/apperrors"
	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	portsrepo "github.com/Finger-Lab/olgacolor-back/internal/core/ports/repositories"
	"github.com/Finger-Lab/olgacolor-back/internal/dto"
	"github.com/Finger-Lab/olgacolor-back/internal/utils"
	"github.com/google/uuid"
)

// UserService handles registration and credential verification.
type UserService struct {
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
	now       func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, jwtSecret string, jwtExpiry time.Duration, jwtIssuer string) *UserService {
	return &UserService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		jwtIssuer: jwtIssuer,
		now:       time.Now,
	}
}

// Register creates a new user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return &user, nil
}

// Login verifies credentials and returns a signed JWT plus the user. Both an
// unknown email and a bad password report the same unauthorized error.
func (s *UserService) Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, user, nil
}
