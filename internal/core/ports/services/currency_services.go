package services

import (
	"context"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
)

// CurrencySvcFacade exposes the currency registry.
type CurrencySvcFacade interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all supported currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// GetExchangeRate resolves a directed rate and flags it when older than the TTL.
	GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.RateQuote, error)

	// ListExchangeRates lists the stored snapshot.
	ListExchangeRates(ctx context.Context, filter domain.RateFilter) (*domain.RateListing, error)

	// CurrentRateTable returns a table over the snapshot as stored right now.
	CurrentRateTable(ctx context.Context) (*domain.RateTable, error)
}

// ExchangeRateRefresherSvc pulls new rates from external sources.
type ExchangeRateRefresherSvc interface {
	// RefreshRates fetches from source, or from every source when source is empty.
	RefreshRates(ctx context.Context, source string) (*domain.RefreshReport, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateRefresherSvc
}

// RateSource fetches a batch of rates from one external provider.
type RateSource interface {
	Name() string
	FetchRates(ctx context.Context) ([]domain.ExchangeRate, error)
}
