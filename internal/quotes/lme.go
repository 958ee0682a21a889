package quotes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/Finger-Lab/olgacolor-back/pkg/httpx"
	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

// Plausible USD-per-ton band for aluminum. Values outside it are assumed to
// be layout drift (a different table cell scraped by mistake), not real prices.
var (
	lmePriceMin = decimal.NewFromInt(1000)
	lmePriceMax = decimal.NewFromInt(10000)
)

// aluminumPricePattern is the shape a cleaned cell must have: 3-4 integer
// digits, a dot, exactly 2 decimals. Rejects headers, "N/A" and percentages.
var aluminumPricePattern = regexp.MustCompile(`^\d{3,4}\.\d{2}$`)

// Selectors tried in order, most specific first. The page's markup drifts;
// the chain degrades toward broader cells rather than failing outright.
var lmeSelectors = []string{
	"table.prices tbody tr:first-of-type td.price",
	"table.prices td.price",
	"table.prices td:nth-of-type(2)",
	"table td.price",
	"table td",
}

// LMEScrape extracts the aluminum cash price from the exchange's public
// price page. The upstream rejects non-browser requests, hence the header set.
type LMEScrape struct {
	client *httpx.Client
	url    string
	logger *slog.Logger
}

// NewLMEScrape creates the aluminum scrape adapter.
func NewLMEScrape(client *httpx.Client, url string, logger *slog.Logger) *LMEScrape {
	return &LMEScrape{
		client: client,
		url:    url,
		logger: logger,
	}
}

// Name identifies the adapter in logs and metrics.
func (s *LMEScrape) Name() string { return "lme-scrape" }

// FetchQuote downloads the price page and extracts the aluminum price.
// Extraction mismatches (no node, bad shape, out-of-band value) report
// unavailable rather than error: page drift must not break scheduled runs.
func (s *LMEScrape) FetchQuote(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: building request: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: parsing page: %v", ErrUnavailable, err)
	}

	text, selector, ok := firstMatch(doc, lmeSelectors)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no selector matched the page", ErrUnavailable)
	}

	price, ok := parseAluminumPrice(text)
	if !ok {
		s.logger.Warn("scraped cell did not look like an aluminum price",
			slog.String("source", s.Name()),
			slog.String("selector", selector),
			slog.String("text", strings.TrimSpace(text)),
		)
		return decimal.Zero, fmt.Errorf("%w: extracted text %q failed the price check", ErrUnavailable, strings.TrimSpace(text))
	}

	s.logger.Info("fetched aluminum quote",
		slog.String("source", s.Name()),
		slog.String("selector", selector),
		slog.String("rate", price.String()),
	)
	return price, nil
}

// firstMatch evaluates the selector chain and returns the text of the first
// node of the first selector that matches anything.
func firstMatch(doc *goquery.Document, selectors []string) (text, selector string, ok bool) {
	for _, sel := range selectors {
		nodes := doc.Find(sel)
		if nodes.Length() > 0 {
			return nodes.First().Text(), sel, true
		}
	}
	return "", "", false
}

// parseAluminumPrice cleans a scraped cell and validates it as a plausible
// aluminum price: strip everything but digits and dots, require the
// NNN(N).NN shape, then require the value inside [1000, 10000] USD/ton.
func parseAluminumPrice(raw string) (decimal.Decimal, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)

	if !aluminumPricePattern.MatchString(cleaned) {
		return decimal.Zero, false
	}
	price, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	if price.LessThan(lmePriceMin) || price.GreaterThan(lmePriceMax) {
		return decimal.Zero, false
	}
	return price, true
}
