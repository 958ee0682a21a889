package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Finger-Lab/olgacolor-back/internal/apperrors"
	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	"github.com/Finger-Lab/olgacolor-back/internal/models"
	"github.com/Finger-Lab/olgacolor-back/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, name, email, password_hash, created_at, last_updated_at`

// PgxUserRepository implements the user repository ports using pgxpool.
type PgxUserRepository struct {
	BaseRepository
}

// NewPgxUserRepository creates a new PgxUserRepository.
func NewPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveUser inserts a new user. Emails are stored lowercase and unique.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	m.Email = strings.ToLower(m.Email)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.UserID, m.Name, m.Email, m.PasswordHash, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email (case-insensitive).
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findUser(ctx, `email = $1`, strings.ToLower(email))
}

// FindUserByID retrieves a user by ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUser(ctx, `user_id = $1`, userID)
}

func (r *PgxUserRepository) findUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	var m models.User
	err := r.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg).Scan(
		&m.UserID, &m.Name, &m.Email, &m.PasswordHash, &m.CreatedAt, &m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	d := mapping.ToDomainUser(m)
	return &d, nil
}
