package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	portsrepo "github.com/Finger-Lab/olgacolor-back/internal/core/ports/repositories"
	"github.com/Finger-Lab/olgacolor-back/internal/infrastructure/metrics"
	"github.com/Finger-Lab/olgacolor-back/internal/quotes"
	"github.com/google/uuid"
)

// IngestionService acquires quotes through ordered adapter chains and
// upserts them into the rate store. Each instrument is handled
// independently: one chain failing never blocks the others.
type IngestionService struct {
	rateRepo portsrepo.RateRepositoryFacade
	logger   *slog.Logger
	chains   map[domain.Instrument][]quotes.Source
	order    []domain.Instrument
}

// NewIngestionService creates an IngestionService with no chains registered.
func NewIngestionService(rateRepo portsrepo.RateRepositoryFacade, logger *slog.Logger) *IngestionService {
	return &IngestionService{
		rateRepo: rateRepo,
		logger:   logger,
		chains:   make(map[domain.Instrument][]quotes.Source),
	}
}

// Register installs the adapter chain for an instrument, preferred first.
// Registering again replaces the chain.
func (s *IngestionService) Register(instrument domain.Instrument, sources ...quotes.Source) {
	if _, exists := s.chains[instrument]; !exists {
		s.order = append(s.order, instrument)
	}
	s.chains[instrument] = sources
}

// SourceCount reports the total number of adapters across all chains.
// Callers sizing a run deadline multiply the per-call timeout by it.
func (s *IngestionService) SourceCount() int {
	n := 0
	for _, chain := range s.chains {
		n += len(chain)
	}
	return n
}

// FetchOne tries the instrument's adapters in order and upserts the first
// successful quote under (instrument, asOf date). Returns whether a record
// was written. Source failures are logged, never propagated.
func (s *IngestionService) FetchOne(ctx context.Context, instrument domain.Instrument, asOf time.Time) bool {
	ok := s.fetchOne(ctx, instrument, asOf)
	metrics.RecordIngestionRun(string(instrument), ok)
	return ok
}

func (s *IngestionService) fetchOne(ctx context.Context, instrument domain.Instrument, asOf time.Time) bool {
	chain, exists := s.chains[instrument]
	if !exists || len(chain) == 0 {
		s.logger.Warn("no quote sources registered", slog.String("instrument", string(instrument)))
		return false
	}

	for _, source := range chain {
		value, err := source.FetchQuote(ctx)
		if err != nil {
			metrics.RecordFetchAttempt(string(instrument), source.Name(), false)
			s.logger.Warn("quote source failed",
				slog.String("instrument", string(instrument)),
				slog.String("source", source.Name()),
				slog.String("error", err.Error()),
			)
			continue
		}
		metrics.RecordFetchAttempt(string(instrument), source.Name(), true)

		now := time.Now()
		record := domain.RateRecord{
			RateID:     uuid.NewString(),
			Instrument: instrument,
			Rate:       value,
			RateDate:   TruncateToDate(asOf),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		if err := s.rateRepo.UpsertRate(ctx, record); err != nil {
			s.logger.Error("failed to persist quote",
				slog.String("instrument", string(instrument)),
				slog.String("source", source.Name()),
				slog.String("error", err.Error()),
			)
			return false
		}

		s.logger.Info("rate updated",
			slog.String("instrument", string(instrument)),
			slog.String("source", source.Name()),
			slog.String("rate", value.String()),
			slog.String("date", record.RateDate.Format("2006-01-02")),
		)
		return true
	}

	s.logger.Warn("all quote sources failed", slog.String("instrument", string(instrument)))
	return false
}

// FetchAll runs FetchOne for every registered instrument, in registration
// order, and reports per-instrument success. It always completes.
func (s *IngestionService) FetchAll(ctx context.Context, asOf time.Time) map[domain.Instrument]bool {
	results := make(map[domain.Instrument]bool, len(s.order))
	for _, instrument := range s.order {
		results[instrument] = s.FetchOne(ctx, instrument, asOf)
	}
	return results
}

// TruncateToDate drops the time-of-day component, keeping a UTC calendar date.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
