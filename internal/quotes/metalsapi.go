package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Finger-Lab/olgacolor-back/pkg/httpx"
	"github.com/shopspring/decimal"
)

// metalsAPITonFactor converts the API's per-kg aluminum quote to per-ton.
var metalsAPITonFactor = decimal.NewFromInt(1000)

// MetalsAPI is the fallback aluminum source. It needs an API key; a missing
// key is a configuration problem, logged once per attempt and reported as
// unavailable so the rest of the batch keeps going.
type MetalsAPI struct {
	client  *httpx.Client
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

// NewMetalsAPI creates the fallback aluminum adapter.
func NewMetalsAPI(client *httpx.Client, baseURL, apiKey string, logger *slog.Logger) *MetalsAPI {
	return &MetalsAPI{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
	}
}

// Name identifies the adapter in logs and metrics.
func (s *MetalsAPI) Name() string { return "metals-api" }

// FetchQuote retrieves the latest aluminum rate and converts it to USD/ton.
func (s *MetalsAPI) FetchQuote(ctx context.Context) (decimal.Decimal, error) {
	if s.apiKey == "" {
		s.logger.Warn("METALS_API_KEY is not configured, skipping adapter", slog.String("source", s.Name()))
		return decimal.Zero, fmt.Errorf("%w: missing API key", ErrUnavailable)
	}

	params := url.Values{}
	params.Set("access_key", s.apiKey)
	params.Set("base", "USD")
	params.Set("symbols", "ALU")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: building request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}

	rate, ok := body.Rates["ALU"]
	if !ok || rate <= 0 {
		return decimal.Zero, fmt.Errorf("%w: missing ALU rate", ErrUnavailable)
	}

	perTon := decimal.NewFromFloat(rate).Mul(metalsAPITonFactor)
	s.logger.Info("fetched aluminum quote", slog.String("source", s.Name()), slog.String("rate", perTon.String()))
	return perTon, nil
}
