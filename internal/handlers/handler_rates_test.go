package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Finger-Lab/olgacolor-back/internal/apperrors"
	"github.com/Finger-Lab/olgacolor-back/internal/core/domain"
	portssvc "github.com/Finger-Lab/olgacolor-back/internal/core/ports/services"
	"github.com/Finger-Lab/olgacolor-back/internal/dto"
	"github.com/Finger-Lab/olgacolor-back/internal/handlers"
	"github.com/Finger-Lab/olgacolor-back/internal/platform/config"
	"github.com/Finger-Lab/olgacolor-back/internal/platform/mailer"
	"github.com/Finger-Lab/olgacolor-back/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

// --- Mock RateService ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) CreateRate(ctx context.Context, req dto.CreateRateRequest) (*domain.RateRecord, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateRecord), args.Error(1)
}
func (m *MockRateService) GetRateByID(ctx context.Context, rateID string) (*domain.RateRecord, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateRecord), args.Error(1)
}
func (m *MockRateService) ListRates(ctx context.Context, q dto.ListRatesQuery) ([]domain.RateRecord, int, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.RateRecord), args.Int(1), args.Error(2)
}
func (m *MockRateService) UpdateRate(ctx context.Context, rateID string, req dto.UpdateRateRequest) (*domain.RateRecord, error) {
	args := m.Called(ctx, rateID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateRecord), args.Error(1)
}
func (m *MockRateService) DeleteRate(ctx context.Context, rateID string) error {
	args := m.Called(ctx, rateID)
	return args.Error(0)
}
func (m *MockRateService) CurrentRates(ctx context.Context) (map[domain.Instrument]*domain.RateRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Instrument]*domain.RateRecord), args.Error(1)
}
func (m *MockRateService) MonthlyRates(ctx context.Context, instrument domain.Instrument, date time.Time) ([]domain.RateRecord, time.Time, time.Time, error) {
	args := m.Called(ctx, instrument, date)
	if args.Get(0) == nil {
		return nil, args.Get(1).(time.Time), args.Get(2).(time.Time), args.Error(3)
	}
	return args.Get(0).([]domain.RateRecord), args.Get(1).(time.Time), args.Get(2).(time.Time), args.Error(3)
}
func (m *MockRateService) ComputeVariations(ctx context.Context, instrument domain.Instrument, asOf time.Time) (*domain.VariationReport, error) {
	args := m.Called(ctx, instrument, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VariationReport), args.Error(1)
}

var _ portssvc.RateSvcFacade = (*MockRateService)(nil)

// --- Mock IngestionService ---
type MockIngestionService struct {
	mock.Mock
}

func (m *MockIngestionService) FetchOne(ctx context.Context, instrument domain.Instrument, asOf time.Time) bool {
	args := m.Called(ctx, instrument, asOf)
	return args.Bool(0)
}
func (m *MockIngestionService) FetchAll(ctx context.Context, asOf time.Time) map[domain.Instrument]bool {
	args := m.Called(ctx, asOf)
	return args.Get(0).(map[domain.Instrument]bool)
}

var _ portssvc.IngestionSvcFacade = (*MockIngestionService)(nil)

// --- Mock MarketService ---
type MockMarketService struct {
	mock.Mock
}

func (m *MockMarketService) ListMarkets(ctx context.Context) ([]domain.Market, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Market), args.Error(1)
}
func (m *MockMarketService) CreateMarket(ctx context.Context, req dto.CreateMarketRequest, imagePaths []string) (*domain.Market, error) {
	args := m.Called(ctx, req, imagePaths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Market), args.Error(1)
}

var _ portssvc.MarketSvcFacade = (*MockMarketService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Suite ---

const testJWTSecret = "test-secret"

type RateHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	rateService   *MockRateService
	ingestionMock *MockIngestionService
}

func (s *RateHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.rateService = new(MockRateService)
	s.ingestionMock = new(MockIngestionService)

	cfg := &config.Config{
		JWTSecret:        testJWTSecret,
		IsProduction:     true,
		UploadDir:        s.T().TempDir(),
		ContactRecipient: "contact@example.com",
	}
	services := &portssvc.ServiceContainer{
		Rate:      s.rateService,
		Ingestion: s.ingestionMock,
		Market:    new(MockMarketService),
		User:      new(MockUserService),
	}
	rate, err := limiter.NewRateFromFormatted("100-M")
	s.Require().NoError(err)
	contactLimiter := limiter.New(memorystore.NewStore(), rate)

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, services, contactLimiter, mailer.New("", "", "", "", ""))
}

func TestRateHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(RateHandlerTestSuite))
}

func (s *RateHandlerTestSuite) bearerToken() string {
	token, err := utils.GenerateJWT("user-1", testJWTSecret, time.Hour, "test")
	s.Require().NoError(err)
	return "Bearer " + token
}

func (s *RateHandlerTestSuite) TestVariationsEndpoint() {
	current := decimal.RequireFromString("5.50")
	previous := decimal.RequireFromString("5.00")
	variation := decimal.RequireFromString("10")
	currentDate := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	previousDate := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)

	report := &domain.VariationReport{
		Instrument: domain.InstrumentUSD,
		AsOf:       currentDate,
		Daily: domain.HorizonVariation{
			Current:      &current,
			Previous:     &previous,
			VariationPct: &variation,
			CurrentDate:  &currentDate,
			PreviousDate: &previousDate,
		},
	}
	s.rateService.On("ComputeVariations", mock.Anything, domain.InstrumentUSD, currentDate).Return(report, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/quotes/variations?type=usd&date=2026-08-15", nil)
	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusOK, w.Code)

	var body struct {
		Type       string `json:"type"`
		Date       string `json:"date"`
		Variations struct {
			Daily struct {
				Current      *string `json:"current"`
				Previous     *string `json:"previous"`
				Variation    *string `json:"variation"`
				CurrentDate  *string `json:"current_date"`
				PreviousDate *string `json:"previous_date"`
			} `json:"daily"`
			Weekly struct {
				Current *string `json:"current"`
			} `json:"weekly"`
		} `json:"variations"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("USD", body.Type)
	s.Equal("2026-08-15", body.Date)
	s.Require().NotNil(body.Variations.Daily.Variation)
	s.Equal("10", *body.Variations.Daily.Variation)
	s.Require().NotNil(body.Variations.Daily.PreviousDate)
	s.Equal("2026-08-14", *body.Variations.Daily.PreviousDate)
	s.Nil(body.Variations.Weekly.Current, "empty horizon serializes as nulls")

	s.rateService.AssertExpectations(s.T())
}

func (s *RateHandlerTestSuite) TestVariationsRejectsUnknownInstrument() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/quotes/variations?type=gold", nil)
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RateHandlerTestSuite) TestCurrentRatesEndpoint() {
	rate := decimal.RequireFromString("5.25")
	s.rateService.On("CurrentRates", mock.Anything).Return(map[domain.Instrument]*domain.RateRecord{
		domain.InstrumentUSD: {
			RateID:     "r1",
			Instrument: domain.InstrumentUSD,
			Rate:       rate,
			RateDate:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		},
		domain.InstrumentAluminum: nil,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/quotes/current", nil)
	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusOK, w.Code)
	var body map[string]*dto.RateResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Require().NotNil(body["USD"])
	s.Equal("5.25", body["USD"].Rate.String())
	s.Nil(body["ALUMINUM"])
}

func (s *RateHandlerTestSuite) TestCreateRateRequiresAuth() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/rates",
		strings.NewReader(`{"currency_type":"usd","rate":"5.25","rate_date":"2026-08-15"}`))
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RateHandlerTestSuite) TestCreateRate() {
	record := &domain.RateRecord{
		RateID:     "r1",
		Instrument: domain.InstrumentUSD,
		Rate:       decimal.RequireFromString("5.25"),
		RateDate:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	}
	s.rateService.On("CreateRate", mock.Anything, mock.AnythingOfType("dto.CreateRateRequest")).Return(record, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/rates",
		strings.NewReader(`{"currency_type":"usd","rate":"5.25","rate_date":"2026-08-15"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", s.bearerToken())
	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusCreated, w.Code)
	var body dto.RateResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("r1", body.RateID)
	s.Equal("2026-08-15", body.RateDate)
}

func (s *RateHandlerTestSuite) TestCreateRateDuplicate() {
	s.rateService.On("CreateRate", mock.Anything, mock.AnythingOfType("dto.CreateRateRequest")).
		Return(nil, apperrors.ErrDuplicate)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/rates",
		strings.NewReader(`{"currency_type":"usd","rate":"5.25","rate_date":"2026-08-15"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", s.bearerToken())
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *RateHandlerTestSuite) TestUpdateRateDuplicate() {
	s.rateService.On("UpdateRate", mock.Anything, "r1", mock.AnythingOfType("dto.UpdateRateRequest")).
		Return(nil, apperrors.ErrDuplicate)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/rates/r1",
		strings.NewReader(`{"rate_date":"2026-08-15"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", s.bearerToken())
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusConflict, w.Code, "moving a rate onto an occupied date must not surface as a server error")
}

func (s *RateHandlerTestSuite) TestVariationsDefaultsToAluminum() {
	report := &domain.VariationReport{
		Instrument: domain.InstrumentAluminum,
		AsOf:       time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
	}
	s.rateService.On("ComputeVariations", mock.Anything, domain.InstrumentAluminum, mock.AnythingOfType("time.Time")).
		Return(report, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/quotes/variations", nil)
	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusOK, w.Code)
	s.rateService.AssertExpectations(s.T())
}

func (s *RateHandlerTestSuite) TestMonthlyDefaultsToAluminum() {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	s.rateService.On("MonthlyRates", mock.Anything, domain.InstrumentAluminum, mock.AnythingOfType("time.Time")).
		Return([]domain.RateRecord{}, start, end, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/quotes/monthly", nil)
	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusOK, w.Code)
	var body dto.MonthlyRatesResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("ALUMINUM", body.Type)
	s.rateService.AssertExpectations(s.T())
}

func (s *RateHandlerTestSuite) TestFetchEndpoint() {
	s.ingestionMock.On("FetchAll", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(map[domain.Instrument]bool{
			domain.InstrumentUSD:      true,
			domain.InstrumentAluminum: false,
		})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/quotes/fetch", nil)
	req.Header.Set("Authorization", s.bearerToken())
	s.router.ServeHTTP(w, req)

	s.Require().Equal(http.StatusOK, w.Code)
	var body map[string]bool
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.True(body["USD"])
	s.False(body["ALUMINUM"])
}
