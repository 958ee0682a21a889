package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Finger-Lab/olgacolor-back/internal/apperrors"
	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	portsrepo "github.com/Finger-Lab/olgacolor-back/internal/core/ports/repositories"
	"github.com/Finger-Lab/olgacolor-back/internal/models"
	"github.com/Finger-Lab/olgacolor-back/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const rateColumns = `rate_id, currency_type, rate, rate_date, created_at, last_updated_at`

// PgxRateRepository implements the rate repository ports using pgxpool.
type PgxRateRepository struct {
	BaseRepository
}

// NewPgxRateRepository creates a new PgxRateRepository.
func NewPgxRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveRate inserts a new rate record. A conflicting (currency_type, rate_date)
// key is reported as ErrDuplicate; admin creation does not silently overwrite.
func (r *PgxRateRepository) SaveRate(ctx context.Context, rate domain.RateRecord) error {
	m := mapping.ToModelRateRecord(rate)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO currency_rates (`+rateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.RateID, m.CurrencyType, m.Rate, m.RateDate, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: rate for %s on %s", apperrors.ErrDuplicate, m.CurrencyType, m.RateDate.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to save rate: %w", err)
	}
	return nil
}

// UpsertRate inserts or replaces the record keyed by (currency_type, rate_date).
// Last write wins; this is what makes the afternoon retry run idempotent.
func (r *PgxRateRepository) UpsertRate(ctx context.Context, rate domain.RateRecord) error {
	m := mapping.ToModelRateRecord(rate)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO currency_rates (`+rateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (currency_type, rate_date)
		DO UPDATE SET rate = EXCLUDED.rate, last_updated_at = EXCLUDED.last_updated_at`,
		m.RateID, m.CurrencyType, m.Rate, m.RateDate, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert rate: %w", err)
	}
	return nil
}

// UpdateRate rewrites an existing record by ID.
func (r *PgxRateRepository) UpdateRate(ctx context.Context, rate domain.RateRecord) error {
	m := mapping.ToModelRateRecord(rate)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE currency_rates
		SET currency_type = $1, rate = $2, rate_date = $3, last_updated_at = $4
		WHERE rate_id = $5`,
		m.CurrencyType, m.Rate, m.RateDate, m.LastUpdatedAt, m.RateID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: rate for %s on %s", apperrors.ErrDuplicate, m.CurrencyType, m.RateDate.Format("2006-01-02"))
		}
		return fmt.Errorf("failed to update rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteRate removes a record by ID.
func (r *PgxRateRepository) DeleteRate(ctx context.Context, rateID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM currency_rates WHERE rate_id = $1`, rateID)
	if err != nil {
		return fmt.Errorf("failed to delete rate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindRateByID retrieves a rate record by its ID.
func (r *PgxRateRepository) FindRateByID(ctx context.Context, rateID string) (*domain.RateRecord, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+rateColumns+`
		FROM currency_rates
		WHERE rate_id = $1`, rateID)
	return r.scanOne(row)
}

// MostRecentOnOrBefore returns the record with the greatest rate_date <= date.
// This is the primary query shape of both ingestion and variation lookups.
func (r *PgxRateRepository) MostRecentOnOrBefore(ctx context.Context, instrument domain.Instrument, date time.Time) (*domain.RateRecord, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+rateColumns+`
		FROM currency_rates
		WHERE currency_type = $1 AND rate_date <= $2
		ORDER BY rate_date DESC
		LIMIT 1`, string(instrument), date)
	return r.scanOne(row)
}

// ListBetween returns the instrument's records inside [from, to], ascending.
func (r *PgxRateRepository) ListBetween(ctx context.Context, instrument domain.Instrument, from, to time.Time) ([]domain.RateRecord, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+rateColumns+`
		FROM currency_rates
		WHERE currency_type = $1 AND rate_date BETWEEN $2 AND $3
		ORDER BY rate_date ASC`, string(instrument), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates between dates: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListRates returns filtered records in descending date order plus the total count.
func (r *PgxRateRepository) ListRates(ctx context.Context, filter portsrepo.ListRatesFilter) ([]domain.RateRecord, int, error) {
	baseQuery := `FROM currency_rates WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if filter.Instrument != nil {
		baseQuery += fmt.Sprintf(" AND currency_type = $%d", argNum)
		args = append(args, string(*filter.Instrument))
		argNum++
	}
	if filter.Date != nil {
		baseQuery += fmt.Sprintf(" AND rate_date = $%d", argNum)
		args = append(args, *filter.Date)
		argNum++
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		baseQuery += fmt.Sprintf(" AND rate_date BETWEEN $%d AND $%d", argNum, argNum+1)
		args = append(args, *filter.StartDate, *filter.EndDate)
		argNum += 2
	}

	var total int
	if err := r.Pool.QueryRow(ctx, "SELECT COUNT(*) "+baseQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count rates: %w", err)
	}
	if total == 0 {
		return []domain.RateRecord{}, 0, nil
	}

	baseQuery += " ORDER BY rate_date DESC"
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
		args = append(args, filter.PageSize, offset)
	}

	rows, err := r.Pool.Query(ctx, "SELECT "+rateColumns+" "+baseQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rates: %w", err)
	}
	defer rows.Close()

	records, err := r.scanMany(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *PgxRateRepository) scanOne(row pgx.Row) (*domain.RateRecord, error) {
	var m models.RateRecord
	err := row.Scan(&m.RateID, &m.CurrencyType, &m.Rate, &m.RateDate, &m.CreatedAt, &m.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan rate: %w", err)
	}
	d := mapping.ToDomainRateRecord(m)
	return &d, nil
}

func (r *PgxRateRepository) scanMany(rows pgx.Rows) ([]domain.RateRecord, error) {
	var ms []models.RateRecord
	for rows.Next() {
		var m models.RateRecord
		if err := rows.Scan(&m.RateID, &m.CurrencyType, &m.Rate, &m.RateDate, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rates: %w", err)
	}
	return mapping.ToDomainRateRecordSlice(ms), nil
}
