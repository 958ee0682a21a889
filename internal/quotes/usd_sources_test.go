package quotes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRateAPIFetchQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"base":"USD","rates":{"BRL":5.4321,"EUR":0.92}}`)
	}))
	defer srv.Close()

	source := NewExchangeRateAPI(testClient(), srv.URL, testLogger())
	value, err := source.FetchQuote(context.Background())
	require.NoError(t, err)
	// BRL per USD, stored as published. No inversion.
	assert.Equal(t, "5.4321", value.String())
}

func TestExchangeRateAPIMissingTarget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"base":"USD","rates":{"EUR":0.92}}`)
	}))
	defer srv.Close()

	source := NewExchangeRateAPI(testClient(), srv.URL, testLogger())
	_, err := source.FetchQuote(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestExchangeRateAPIUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	source := NewExchangeRateAPI(testClient(), srv.URL, testLogger())
	_, err := source.FetchQuote(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestBCBPtaxFetchQuote(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"value":[{"cotacaoCompra":5.1234,"cotacaoVenda":5.1300}]}`)
	}))
	defer srv.Close()

	source := NewBCBPtax(testClient(), srv.URL, time.UTC, testLogger())
	source.now = func() time.Time { return time.Date(2026, 8, 14, 15, 0, 0, 0, time.UTC) }

	value, err := source.FetchQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "5.1234", value.String())
	assert.Contains(t, gotQuery, "08-14-2026", "date must be sent as MM-DD-YYYY")
	assert.Contains(t, gotQuery, "USD")
}

func TestBCBPtaxQueryDateUsesConfiguredTimezone(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"value":[{"cotacaoCompra":5.1234}]}`)
	}))
	defer srv.Close()

	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	source := NewBCBPtax(testClient(), srv.URL, saoPaulo, testLogger())
	// 01:30 UTC on Aug 15 is still Aug 14 in Sao Paulo.
	source.now = func() time.Time { return time.Date(2026, 8, 15, 1, 30, 0, 0, time.UTC) }

	_, err = source.FetchQuote(context.Background())
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "08-14-2026", "query date must follow the run timezone")
}

func TestBCBPtaxNoQuotationPublished(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"value":[]}`)
	}))
	defer srv.Close()

	source := NewBCBPtax(testClient(), srv.URL, time.UTC, testLogger())
	_, err := source.FetchQuote(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMetalsAPIFetchQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("access_key"))
		_, _ = io.WriteString(w, `{"rates":{"ALU":2.4005}}`)
	}))
	defer srv.Close()

	source := NewMetalsAPI(testClient(), srv.URL, "test-key", testLogger())
	value, err := source.FetchQuote(context.Background())
	require.NoError(t, err)
	// Per-kg quote converted to USD per metric ton.
	assert.Equal(t, "2400.5", value.String())
}

func TestMetalsAPIMissingKey(t *testing.T) {
	source := NewMetalsAPI(testClient(), "http://unused.invalid", "", testLogger())
	_, err := source.FetchQuote(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
