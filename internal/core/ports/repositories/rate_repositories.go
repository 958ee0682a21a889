package repositories

import (
	"context"
	"time"

	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
)

// ListRatesFilter narrows ListRates results. Nil fields are ignored.
type ListRatesFilter struct {
	Instrument *domain.Instrument
	Date       *time.Time
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	PageSize   int
}

// RateReader defines read operations for rate records.
type RateReader interface {
	// FindRateByID retrieves a rate record by its ID.
	FindRateByID(ctx context.Context, rateID string) (*domain.RateRecord, error)
	// MostRecentOnOrBefore returns the record with the greatest rate_date <= date
	// for the instrument, or apperrors.ErrNotFound.
	MostRecentOnOrBefore(ctx context.Context, instrument domain.Instrument, date time.Time) (*domain.RateRecord, error)
	// ListBetween returns records inside [from, to] in ascending date order.
	ListBetween(ctx context.Context, instrument domain.Instrument, from, to time.Time) ([]domain.RateRecord, error)
	// ListRates returns filtered records (descending date) plus the total count.
	ListRates(ctx context.Context, filter ListRatesFilter) ([]domain.RateRecord, int, error)
}

// RateWriter defines write operations for rate records.
type RateWriter interface {
	// SaveRate inserts a new record; a conflicting (instrument, rate_date)
	// yields apperrors.ErrDuplicate.
	SaveRate(ctx context.Context, rate domain.RateRecord) error
	// UpsertRate inserts or replaces the record keyed by (instrument, rate_date).
	UpsertRate(ctx context.Context, rate domain.RateRecord) error
	// UpdateRate rewrites an existing record by ID.
	UpdateRate(ctx context.Context, rate domain.RateRecord) error
	// DeleteRate removes a record by ID.
	DeleteRate(ctx context.Context, rateID string) error
}

// RateRepositoryFacade combines all rate repository interfaces.
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
