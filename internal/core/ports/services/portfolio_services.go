package services

import (
	"context"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PortfolioSvcFacade reads and manages user portfolios.
type PortfolioSvcFacade interface {
	GetPortfolio(ctx context.Context, userID string) (*domain.Portfolio, error)
	// GetValuation values the portfolio in base, or in the configured base currency when base is empty.
	GetValuation(ctx context.Context, userID, base string) (*domain.Valuation, error)
	OpenWallet(ctx context.Context, userID, currencyCode string) (*domain.Portfolio, error)
}

// TradeSvcFacade executes trades against the base currency.
type TradeSvcFacade interface {
	Buy(ctx context.Context, userID, currencyCode string, amount decimal.Decimal) (*domain.TradeResult, error)
	Sell(ctx context.Context, userID, currencyCode string, amount decimal.Decimal) (*domain.TradeResult, error)
}

// OutcomeRecorder observes the result of user-facing operations.
type OutcomeRecorder interface {
	Record(ctx context.Context, outcome domain.Outcome)
}
