package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Finger-Lab/olgacolor-back/pkg/httpx"
	"github.com/shopspring/decimal"
)

// BCBPtax is the fallback USD source: the Brazilian central bank's PTAX
// odata endpoint, queried for the current date's official buy rate.
type BCBPtax struct {
	client   *httpx.Client
	baseURL  string
	location *time.Location
	logger   *slog.Logger
	now      func() time.Time
}

// NewBCBPtax creates the fallback USD adapter. The location decides which
// calendar day is asked for; it must match the timezone the ingestion runs
// are scheduled in, or early-morning runs query the wrong day.
func NewBCBPtax(client *httpx.Client, baseURL string, location *time.Location, logger *slog.Logger) *BCBPtax {
	return &BCBPtax{
		client:   client,
		baseURL:  baseURL,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

// Name identifies the adapter in logs and metrics.
func (s *BCBPtax) Name() string { return "bcb-ptax" }

// FetchQuote retrieves today's PTAX buy rate. The endpoint publishes rates
// on business days only; an empty value array means no rate for today yet.
func (s *BCBPtax) FetchQuote(ctx context.Context) (decimal.Decimal, error) {
	// The odata endpoint wants the date as MM-DD-YYYY inside quotes.
	today := s.now().In(s.location).Format("01-02-2006")
	params := url.Values{}
	params.Set("@moeda", "'USD'")
	params.Set("@dataCotacao", fmt.Sprintf("'%s'", today))
	params.Set("$format", "json")

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
		Value []struct {
			BuyRate float64 `json:"cotacaoCompra"`
		} `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	if len(body.Value) == 0 || body.Value[0].BuyRate <= 0 {
		return decimal.Zero, fmt.Errorf("%w: no quotation published for %s", ErrUnavailable, today)
	}

	value := decimal.NewFromFloat(body.Value[0].BuyRate)
	s.logger.Info("fetched USD quote", slog.String("source", s.Name()), slog.String("rate", value.String()))
	return value, nil
}
