package quotes

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Finger-Lab/olgacolor-back/pkg/httpx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient() *httpx.Client {
	return httpx.New(5*time.Second, false)
}

func TestParseAluminumPrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"plain", "2350.75", "2350.75", true},
		{"thousands separator", "2,350.75", "2350.75", true},
		{"surrounding noise", "  US$ 2,350.75 /t ", "2350.75", true},
		{"three digit price", "999.50", "", false},
		{"not available", "N/A", "", false},
		{"empty", "", "", false},
		{"header text", "Aluminium Cash", "", false},
		{"no decimals", "2350", "", false},
		{"one decimal", "2350.7", "", false},
		{"too many digits", "23500.75", "", false},
		{"below band", "500.00", "", false},
		{"upper edge of band", "9999.99", "9999.99", true},
		{"percentage", "1.25", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseAluminumPrice(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestLMEScrapeFetchQuote(t *testing.T) {
	page := `<html><body>
		<table class="prices">
			<tbody>
				<tr><td class="metal">Aluminium</td><td class="price">2,350.75</td></tr>
				<tr><td class="metal">Copper</td><td class="price">9,120.00</td></tr>
			</tbody>
		</table>
	</body></html>`

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, page)
	}))
	defer srv.Close()

	scrape := NewLMEScrape(testClient(), srv.URL, testLogger())
	price, err := scrape.FetchQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2350.75", price.String())
	assert.Contains(t, gotUA, "Mozilla/5.0", "scrape must present browser headers")
}

func TestLMEScrapeSelectorFallback(t *testing.T) {
	// No td.price cells; the chain must degrade to the broad selectors.
	page := `<html><body><table><tr><td>2,410.25</td></tr></table></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, page)
	}))
	defer srv.Close()

	scrape := NewLMEScrape(testClient(), srv.URL, testLogger())
	price, err := scrape.FetchQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2410.25", price.String())
}

func TestLMEScrapeRejectsBadCell(t *testing.T) {
	page := `<html><body><table class="prices"><tbody><tr><td class="price">N/A</td></tr></tbody></table></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, page)
	}))
	defer srv.Close()

	scrape := NewLMEScrape(testClient(), srv.URL, testLogger())
	_, err := scrape.FetchQuote(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLMEScrapeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	scrape := NewLMEScrape(testClient(), srv.URL, testLogger())
	_, err := scrape.FetchQuote(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
