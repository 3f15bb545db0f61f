package dto

import (
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListExchangeRatesParams are the query parameters of the rate listing.
type ListExchangeRatesParams struct {
	Currency string `form:"currency" binding:"omitempty,currencycode"`
	Top      int    `form:"top,default=0" binding:"min=0"`
}

// RefreshRatesRequest selects a single source; empty means all of them.
type RefreshRatesRequest struct {
	Source string `json:"source" binding:"omitempty,max=32"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	Pair             string          `json:"pair"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	ObservedAt       time.Time       `json:"observedAt"`
	Source           string          `json:"source"`
	Stale            bool            `json:"stale,omitempty"`
}

// ListExchangeRatesResponse wraps a listing of the snapshot.
type ListExchangeRatesResponse struct {
	Rates       []ExchangeRateResponse `json:"rates"`
	LastRefresh *time.Time             `json:"lastRefresh,omitempty"`
}

// SourceResultResponse reports one source of a refresh.
type SourceResultResponse struct {
	Source  string `json:"source"`
	Fetched int    `json:"fetched"`
	Error   string `json:"error,omitempty"`
}

// RefreshRatesResponse reports a refresh cycle.
type RefreshRatesResponse struct {
	Saved       int                    `json:"saved"`
	RefreshedAt time.Time              `json:"refreshedAt"`
	Sources     []SourceResultResponse `json:"sources"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		Pair:             string(rate.Pair()),
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		ObservedAt:       rate.ObservedAt,
		Source:           rate.Source,
	}
}

// ToRateQuoteResponse converts a resolved quote.
func ToRateQuoteResponse(quote *domain.RateQuote) ExchangeRateResponse {
	res := ToExchangeRateResponse(quote.ExchangeRate)
	res.Stale = quote.Stale
	return res
}

// ToListExchangeRatesResponse converts a listing.
func ToListExchangeRatesResponse(listing *domain.RateListing) ListExchangeRatesResponse {
	res := ListExchangeRatesResponse{Rates: make([]ExchangeRateResponse, len(listing.Rates))}
	for i, rate := range listing.Rates {
		res.Rates[i] = ToExchangeRateResponse(rate)
	}
	if !listing.LastRefresh.IsZero() {
		lr := listing.LastRefresh
		res.LastRefresh = &lr
	}
	return res
}

// ToRefreshRatesResponse converts a refresh report.
func ToRefreshRatesResponse(report *domain.RefreshReport) RefreshRatesResponse {
	res := RefreshRatesResponse{
		Saved:       report.Saved,
		RefreshedAt: report.RefreshedAt,
		Sources:     make([]SourceResultResponse, len(report.Results)),
	}
	for i, r := range report.Results {
		res.Sources[i] = SourceResultResponse{Source: r.Source, Fetched: r.Fetched}
		if r.Err != nil {
			res.Sources[i].Error = r.Err.Error()
		}
	}
	return res
}
