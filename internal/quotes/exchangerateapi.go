package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Finger-Lab/olgacolor-back/pkg/httpx"
	"github.com/shopspring/decimal"
)

// ExchangeRateAPI is the primary USD source. It reads the BRL figure from
// the free exchangerate-api latest-rates payload and returns it as-is:
// the stored convention is BRL per 1 USD, no inversion.
type ExchangeRateAPI struct {
	client *httpx.Client
	url    string
	target string
	logger *slog.Logger
}

// NewExchangeRateAPI creates the primary USD adapter.
func NewExchangeRateAPI(client *httpx.Client, url string, logger *slog.Logger) *ExchangeRateAPI {
	return &ExchangeRateAPI{
		client: client,
		url:    url,
		target: "BRL",
		logger: logger,
	}
}

// Name identifies the adapter in logs and metrics.
func (s *ExchangeRateAPI) Name() string { return "exchangerate-api" }

// FetchQuote retrieves the current BRL-per-USD rate.
func (s *ExchangeRateAPI) FetchQuote(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
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

	rate, ok := body.Rates[s.target]
	if !ok || rate <= 0 {
		return decimal.Zero, fmt.Errorf("%w: missing %s rate", ErrUnavailable, s.target)
	}

	value := decimal.NewFromFloat(rate)
	s.logger.Info("fetched USD quote", slog.String("source", s.Name()), slog.String("rate", value.String()))
	return value, nil
}
