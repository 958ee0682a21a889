package services_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	"github.com/Finger-Lab/olgacolor-back/internal/core/services"
	"github.com/Finger-Lab/olgacolor-back/internal/quotes"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// stubSource is a scripted quote source counting its invocations.
type stubSource struct {
	name  string
	value decimal.Decimal
	err   error
	calls int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchQuote(ctx context.Context) (decimal.Decimal, error) {
	s.calls++
	if err := ctx.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", quotes.ErrUnavailable, err)
	}
	if s.err != nil {
		return decimal.Zero, s.err
	}
	return s.value, nil
}

func okSource(name, value string) *stubSource {
	return &stubSource{name: name, value: decimal.RequireFromString(value)}
}

func downSource(name string) *stubSource {
	return &stubSource{name: name, err: fmt.Errorf("%w: upstream down", quotes.ErrUnavailable)}
}

// slowSource burns its full delay (or the remaining context budget) before
// failing, like an unreachable upstream held open until the HTTP timeout.
type slowSource struct {
	name  string
	delay time.Duration
}

func (s *slowSource) Name() string { return s.name }

func (s *slowSource) FetchQuote(ctx context.Context) (decimal.Decimal, error) {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
	}
	return decimal.Zero, fmt.Errorf("%w: timed out", quotes.ErrUnavailable)
}

type IngestionServiceTestSuite struct {
	suite.Suite
	repo    *memRateRepo
	service *services.IngestionService
	ctx     context.Context
	asOf    time.Time
}

func (s *IngestionServiceTestSuite) SetupTest() {
	s.repo = newMemRateRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = services.NewIngestionService(s.repo, logger)
	s.ctx = context.Background()
	s.asOf = time.Date(2026, 8, 15, 14, 0, 0, 0, time.UTC)
}

func TestIngestionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IngestionServiceTestSuite))
}

func (s *IngestionServiceTestSuite) TestPreferredSourceWins() {
	primary := okSource("primary", "5.25")
	fallback := okSource("fallback", "9.99")
	s.service.Register(domain.InstrumentUSD, primary, fallback)

	ok := s.service.FetchOne(s.ctx, domain.InstrumentUSD, s.asOf)
	s.True(ok)
	s.Equal(1, primary.calls)
	s.Equal(0, fallback.calls, "fallback must not run when the primary succeeds")

	record, err := s.repo.MostRecentOnOrBefore(s.ctx, domain.InstrumentUSD, s.asOf)
	s.Require().NoError(err)
	s.Equal("5.25", record.Rate.String())
}

func (s *IngestionServiceTestSuite) TestFallsBackWhenPrimaryUnavailable() {
	primary := downSource("primary")
	fallback := okSource("fallback", "5.40")
	s.service.Register(domain.InstrumentUSD, primary, fallback)

	ok := s.service.FetchOne(s.ctx, domain.InstrumentUSD, s.asOf)
	s.True(ok)
	s.Equal(1, primary.calls)
	s.Equal(1, fallback.calls)

	record, err := s.repo.MostRecentOnOrBefore(s.ctx, domain.InstrumentUSD, s.asOf)
	s.Require().NoError(err)
	s.Equal("5.4", record.Rate.String())
}

func (s *IngestionServiceTestSuite) TestAllSourcesFail() {
	s.service.Register(domain.InstrumentUSD, downSource("primary"), downSource("fallback"))

	ok := s.service.FetchOne(s.ctx, domain.InstrumentUSD, s.asOf)
	s.False(ok)
	s.Equal(0, s.repo.count(), "no record may be written when every source fails")
}

func (s *IngestionServiceTestSuite) TestUnexpectedErrorAlsoFallsThrough() {
	primary := &stubSource{name: "primary", err: errors.New("boom")}
	fallback := okSource("fallback", "5.10")
	s.service.Register(domain.InstrumentUSD, primary, fallback)

	ok := s.service.FetchOne(s.ctx, domain.InstrumentUSD, s.asOf)
	s.True(ok)
	s.Equal(1, fallback.calls)
}

func (s *IngestionServiceTestSuite) TestNoSourcesRegistered() {
	ok := s.service.FetchOne(s.ctx, domain.InstrumentAluminum, s.asOf)
	s.False(ok)
}

func (s *IngestionServiceTestSuite) TestSameDayRefetchReplacesValue() {
	s.service.Register(domain.InstrumentUSD, okSource("first", "5.20"))
	s.True(s.service.FetchOne(s.ctx, domain.InstrumentUSD, s.asOf))

	s.service.Register(domain.InstrumentUSD, okSource("second", "5.35"))
	later := s.asOf.Add(3 * time.Hour)
	s.True(s.service.FetchOne(s.ctx, domain.InstrumentUSD, later))

	s.Equal(1, s.repo.count(), "same-day refetch must replace, not append")
	record, err := s.repo.MostRecentOnOrBefore(s.ctx, domain.InstrumentUSD, s.asOf)
	s.Require().NoError(err)
	s.Equal("5.35", record.Rate.String())
}

func (s *IngestionServiceTestSuite) TestRecordDateIsTruncated() {
	s.service.Register(domain.InstrumentUSD, okSource("primary", "5.25"))
	s.True(s.service.FetchOne(s.ctx, domain.InstrumentUSD, s.asOf))

	record, err := s.repo.MostRecentOnOrBefore(s.ctx, domain.InstrumentUSD, s.asOf)
	s.Require().NoError(err)
	s.Equal(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), record.RateDate)
}

func (s *IngestionServiceTestSuite) TestFetchAllIsolatesFailures() {
	s.service.Register(domain.InstrumentUSD, downSource("usd-primary"), downSource("usd-fallback"))
	aluminum := okSource("lme", "2400.50")
	s.service.Register(domain.InstrumentAluminum, aluminum)

	results := s.service.FetchAll(s.ctx, s.asOf)

	s.Require().Len(results, 2)
	s.False(results[domain.InstrumentUSD])
	s.True(results[domain.InstrumentAluminum])
	s.Equal(1, aluminum.calls)

	record, err := s.repo.MostRecentOnOrBefore(s.ctx, domain.InstrumentAluminum, s.asOf)
	s.Require().NoError(err)
	s.Equal("2400.5", record.Rate.String())
}

func (s *IngestionServiceTestSuite) TestSourceCount() {
	s.Equal(0, s.service.SourceCount())
	s.service.Register(domain.InstrumentUSD, okSource("a", "1"), okSource("b", "2"))
	s.service.Register(domain.InstrumentAluminum, okSource("c", "3"))
	s.Equal(3, s.service.SourceCount())
}

func (s *IngestionServiceTestSuite) TestSlowSourceDoesNotStarveSiblings() {
	perCall := 25 * time.Millisecond
	s.service.Register(domain.InstrumentUSD,
		&slowSource{name: "usd-primary", delay: perCall},
		okSource("usd-fallback", "5.40"),
	)
	s.service.Register(domain.InstrumentAluminum, okSource("lme", "2400.50"))

	// A run deadline sized per adapter leaves room for the fallbacks even
	// when the primary spends its whole HTTP timeout.
	budget := perCall * time.Duration(s.service.SourceCount()+1)
	ctx, cancel := context.WithTimeout(s.ctx, budget)
	defer cancel()

	results := s.service.FetchAll(ctx, s.asOf)
	s.True(results[domain.InstrumentUSD], "fallback must still get its turn")
	s.True(results[domain.InstrumentAluminum], "one hung chain must not consume the whole run")
}

func (s *IngestionServiceTestSuite) TestReRegisterReplacesChain() {
	old := okSource("old", "1.00")
	s.service.Register(domain.InstrumentUSD, old)
	replacement := okSource("new", "5.55")
	s.service.Register(domain.InstrumentUSD, replacement)

	s.True(s.service.FetchOne(s.ctx, domain.InstrumentUSD, s.asOf))
	s.Equal(0, old.calls)
	s.Equal(1, replacement.calls)
}

func TestTruncateToDate(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatal(err)
	}
	in := time.Date(2026, 8, 15, 23, 45, 0, 0, loc)
	got := services.TruncateToDate(in)
	want := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("TruncateToDate(%v) = %v, want %v", in, got, want)
	}
}
