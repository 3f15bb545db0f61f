package ratesources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 10, 9, 10, 29, 42, 0, time.UTC)

func sortRates(rates []domain.ExchangeRate) {
	sort.Slice(rates, func(i, j int) bool { return rates[i].Pair() < rates[j].Pair() })
}

func TestCoinGecko_FetchRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		assert.Contains(t, r.URL.Query().Get("ids"), "bitcoin")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":59337.21},"ethereum":{"usd":3720.0}}`))
	}))
	defer srv.Close()

	src := NewCoinGecko(ClientOptions{BaseURL: srv.URL}, "USD", []string{"BTC", "ETH", "SOL", "DOGE"})
	src.now = func() time.Time { return fixedNow }

	rates, err := src.FetchRates(context.Background())
	require.NoError(t, err)
	require.Len(t, rates, 2)
	sortRates(rates)

	assert.Equal(t, domain.PairKey("BTC_USD"), rates[0].Pair())
	assert.True(t, decimal.RequireFromString("59337.21").Equal(rates[0].Rate))
	assert.Equal(t, "CoinGecko", rates[0].Source)
	assert.Equal(t, fixedNow, rates[0].ObservedAt)
	assert.Equal(t, domain.PairKey("ETH_USD"), rates[1].Pair())
	assert.Equal(t, "coingecko", src.Name())
}

func TestCoinGecko_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	src := NewCoinGecko(ClientOptions{BaseURL: srv.URL}, "USD", []string{"BTC"})
	_, err := src.FetchRates(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAPIUnavailable)
	assert.Contains(t, err.Error(), "429")
}

func TestCoinGecko_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	src := NewCoinGecko(ClientOptions{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, "USD", []string{"BTC"})
	_, err := src.FetchRates(context.Background())

	var apiErr *apperrors.APIRequestError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "timeout", apiErr.Reason)
	assert.ErrorIs(t, err, apperrors.ErrAPIUnavailable)
}

func TestExchangeRateAPI_FetchRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/secret/latest/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","conversion_rates":{"USD":1,"EUR":0.8,"GBP":0.5,"RUB":0}}`))
	}))
	defer srv.Close()

	src := NewExchangeRateAPI(ClientOptions{BaseURL: srv.URL + "/"}, "secret", "usd", []string{"EUR", "GBP", "RUB", "USD"})
	src.now = func() time.Time { return fixedNow }

	rates, err := src.FetchRates(context.Background())
	require.NoError(t, err)
	require.Len(t, rates, 2)
	sortRates(rates)

	assert.Equal(t, domain.PairKey("EUR_USD"), rates[0].Pair())
	assert.True(t, decimal.RequireFromString("1.25").Equal(rates[0].Rate))
	assert.Equal(t, domain.PairKey("GBP_USD"), rates[1].Pair())
	assert.True(t, decimal.RequireFromString("2").Equal(rates[1].Rate))
	assert.Equal(t, "ExchangeRate-API", rates[1].Source)
}

func TestExchangeRateAPI_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/bad/latest/USD" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"result":"error","error-type":"invalid-key"}`))
			return
		}
		_, _ = w.Write([]byte(`{"result":"error","error-type":"quota-reached"}`))
	}))
	defer srv.Close()

	_, err := NewExchangeRateAPI(ClientOptions{BaseURL: srv.URL}, "bad", "USD", []string{"EUR"}).FetchRates(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrAPIUnavailable)
	assert.Contains(t, err.Error(), "invalid-key")

	_, err = NewExchangeRateAPI(ClientOptions{BaseURL: srv.URL}, "spent", "USD", []string{"EUR"}).FetchRates(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrAPIUnavailable)
	assert.Contains(t, err.Error(), "quota-reached")

	_, err = NewExchangeRateAPI(ClientOptions{BaseURL: srv.URL}, "", "USD", []string{"EUR"}).FetchRates(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrAPIUnavailable)
	assert.Contains(t, err.Error(), "API key")
}
