package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Finger-Lab/olgacolor-back/internal/apperrors"
	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	portsrepo "github.com/Finger-Lab/olgacolor-back/internal/core/ports/repositories"
	"github.com/Finger-Lab/olgacolor-back/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RateService provides business logic for rate records: admin CRUD, the
// current/monthly listings and the variation windows.
type RateService struct {
	rateRepo portsrepo.RateRepositoryFacade
	now      func() time.Time
}

// NewRateService creates a new RateService.
func NewRateService(rateRepo portsrepo.RateRepositoryFacade) *RateService {
	return &RateService{
		rateRepo: rateRepo,
		now:      time.Now,
	}
}

// CreateRate validates and inserts a new rate record. Unlike ingestion this
// rejects a conflicting (instrument, date) pair instead of overwriting it.
func (s *RateService) CreateRate(ctx context.Context, req dto.CreateRateRequest) (*domain.RateRecord, error) {
	instrument, err := domain.ParseInstrument(req.CurrencyType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}
	rateDate, err := time.Parse(dto.DateLayout, req.RateDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid rate_date", apperrors.ErrValidation)
	}

	now := s.now()
	record := domain.RateRecord{
		RateID:     uuid.NewString(),
		Instrument: instrument,
		Rate:       req.Rate,
		RateDate:   rateDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.rateRepo.SaveRate(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create rate: %w", err)
	}
	return &record, nil
}

// GetRateByID retrieves a rate record by its ID.
func (s *RateService) GetRateByID(ctx context.Context, rateID string) (*domain.RateRecord, error) {
	record, err := s.rateRepo.FindRateByID(ctx, rateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate: %w", err)
	}
	return record, nil
}

// ListRates returns filtered rate records plus the total matching count.
func (s *RateService) ListRates(ctx context.Context, q dto.ListRatesQuery) ([]domain.RateRecord, int, error) {
	filter := portsrepo.ListRatesFilter{
		Page:     q.Page,
		PageSize: q.PerPage,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 15
	}
	if q.Type != "" {
		instrument, err := domain.ParseInstrument(q.Type)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.Instrument = &instrument
	}
	if q.Date != "" {
		date, err := time.Parse(dto.DateLayout, q.Date)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid date", apperrors.ErrValidation)
		}
		filter.Date = &date
	}
	if q.StartDate != "" && q.EndDate != "" {
		start, err := time.Parse(dto.DateLayout, q.StartDate)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid start_date", apperrors.ErrValidation)
		}
		end, err := time.Parse(dto.DateLayout, q.EndDate)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid end_date", apperrors.ErrValidation)
		}
		filter.StartDate = &start
		filter.EndDate = &end
	}

	return s.rateRepo.ListRates(ctx, filter)
}

// UpdateRate rewrites the given fields of an existing record.
func (s *RateService) UpdateRate(ctx context.Context, rateID string, req dto.UpdateRateRequest) (*domain.RateRecord, error) {
	record, err := s.rateRepo.FindRateByID(ctx, rateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate for update: %w", err)
	}

	if req.CurrencyType != nil {
		instrument, err := domain.ParseInstrument(*req.CurrencyType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		record.Instrument = instrument
	}
	if req.Rate != nil {
		if req.Rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
		}
		record.Rate = *req.Rate
	}
	if req.RateDate != nil {
		rateDate, err := time.Parse(dto.DateLayout, *req.RateDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid rate_date", apperrors.ErrValidation)
		}
		record.RateDate = rateDate
	}
	record.LastUpdatedAt = s.now()

	if err := s.rateRepo.UpdateRate(ctx, *record); err != nil {
		return nil, fmt.Errorf("failed to update rate: %w", err)
	}
	return record, nil
}

// DeleteRate removes a record by ID.
func (s *RateService) DeleteRate(ctx context.Context, rateID string) error {
	if err := s.rateRepo.DeleteRate(ctx, rateID); err != nil {
		return fmt.Errorf("failed to delete rate: %w", err)
	}
	return nil
}

// CurrentRates returns the most recent record per known instrument.
// Instruments with no data map to nil rather than erroring.
func (s *RateService) CurrentRates(ctx context.Context) (map[domain.Instrument]*domain.RateRecord, error) {
	today := TruncateToDate(s.now())
	result := make(map[domain.Instrument]*domain.RateRecord)
	for _, instrument := range domain.KnownInstruments() {
		record, err := s.rateRepo.MostRecentOnOrBefore(ctx, instrument, today)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				result[instrument] = nil
				continue
			}
			return nil, fmt.Errorf("failed to get current rate for %s: %w", instrument, err)
		}
		result[instrument] = record
	}
	return result, nil
}

// MonthlyRates lists the instrument's records for the calendar month
// containing date, ascending, plus the resolved month bounds.
func (s *RateService) MonthlyRates(ctx context.Context, instrument domain.Instrument, date time.Time) ([]domain.RateRecord, time.Time, time.Time, error) {
	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	records, err := s.rateRepo.ListBetween(ctx, instrument, start, end)
	if err != nil {
		return nil, start, end, fmt.Errorf("failed to list monthly rates: %w", err)
	}
	return records, start, end, nil
}

// ComputeVariations resolves the three standard lookback windows as of a
// date. Each horizon is independent and tolerates missing data.
func (s *RateService) ComputeVariations(ctx context.Context, instrument domain.Instrument, asOf time.Time) (*domain.VariationReport, error) {
	asOf = TruncateToDate(asOf)
	report := &domain.VariationReport{
		Instrument: instrument,
		AsOf:       asOf,
	}

	horizons := []struct {
		baseline time.Time
		target   *domain.HorizonVariation
	}{
		{asOf.AddDate(0, 0, -1), &report.Daily},
		{asOf.AddDate(0, 0, -7), &report.Weekly},
		{asOf.AddDate(0, -1, 0), &report.Monthly},
	}
	for _, h := range horizons {
		window, err := s.horizonVariation(ctx, instrument, asOf, h.baseline)
		if err != nil {
			return nil, err
		}
		*h.target = window
	}
	return report, nil
}

// horizonVariation computes one lookback window. Missing records yield
// absent fields; a baseline resolving to the same record as the current
// one (sparse data) is reported as absent so no zero-variation is shown.
func (s *RateService) horizonVariation(ctx context.Context, instrument domain.Instrument, asOf, baselineDate time.Time) (domain.HorizonVariation, error) {
	var window domain.HorizonVariation

	current, err := s.rateRepo.MostRecentOnOrBefore(ctx, instrument, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return window, nil
		}
		return window, fmt.Errorf("failed to resolve current rate: %w", err)
	}
	currentValue := current.Rate
	currentDate := current.RateDate
	window.Current = &currentValue
	window.CurrentDate = &currentDate

	baseline, err := s.rateRepo.MostRecentOnOrBefore(ctx, instrument, baselineDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return window, nil
		}
		return window, fmt.Errorf("failed to resolve baseline rate: %w", err)
	}
	if baseline.RateID == current.RateID {
		return window, nil
	}

	previousValue := baseline.Rate
	previousDate := baseline.RateDate
	window.Previous = &previousValue
	window.PreviousDate = &previousDate

	variation := decimal.Zero
	if !baseline.Rate.IsZero() {
		variation = currentValue.Sub(previousValue).Div(previousValue).Mul(hundred)
	}
	window.VariationPct = &variation
	return window, nil
}
