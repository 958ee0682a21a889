package services

import (
	"context"
	"time"

	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	"github.com/Finger-Lab/olgacolor-back/internal/dto"
)

// RateSvcFacade exposes the rate CRUD and derived-metric operations.
type RateSvcFacade interface {
	CreateRate(ctx context.Context, req dto.CreateRateRequest) (*domain.RateRecord, error)
	GetRateByID(ctx context.Context, rateID string) (*domain.RateRecord, error)
	ListRates(ctx context.Context, q dto.ListRatesQuery) ([]domain.RateRecord, int, error)
	UpdateRate(ctx context.Context, rateID string, req dto.UpdateRateRequest) (*domain.RateRecord, error)
	DeleteRate(ctx context.Context, rateID string) error
	// CurrentRates returns the most recent record per known instrument;
	// instruments with no data map to nil.
	CurrentRates(ctx context.Context) (map[domain.Instrument]*domain.RateRecord, error)
	// MonthlyRates returns the records of the calendar month containing date,
	// ascending, plus the resolved month bounds.
	MonthlyRates(ctx context.Context, instrument domain.Instrument, date time.Time) ([]domain.RateRecord, time.Time, time.Time, error)
	// ComputeVariations resolves the daily/weekly/monthly windows as of a date.
	ComputeVariations(ctx context.Context, instrument domain.Instrument, asOf time.Time) (*domain.VariationReport, error)
}

// IngestionSvcFacade exposes the scheduled quote acquisition operations.
type IngestionSvcFacade interface {
	// FetchOne runs the instrument's adapter chain and upserts the first
	// successful quote for asOf's date. Reports success as a boolean; source
	// failures never surface as errors.
	FetchOne(ctx context.Context, instrument domain.Instrument, asOf time.Time) bool
	// FetchAll runs FetchOne for every registered instrument independently.
	FetchAll(ctx context.Context, asOf time.Time) map[domain.Instrument]bool
}
