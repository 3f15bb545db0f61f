package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portsrepo "github.com/SscSPs/valutatrade_hub/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/valutatrade_hub/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// tradeService executes buys and sells against the base currency. Every trade
// holds the user's lock from load to save and mutates a private copy of the
// portfolio, so a failed trade never reaches storage.
type tradeService struct {
	BaseService
	registry      *domain.CurrencyRegistry
	portfolioRepo portsrepo.PortfolioRepositoryFacade
	rates         portssvc.ExchangeRateReaderSvc
	baseCurrency  string
	recorder      portssvc.OutcomeRecorder
	locks         *keyedMutex
	now           func() time.Time
}

// TradeServiceOption is a functional option for configuring the trade service
type TradeServiceOption func(*tradeService)

// WithTradeRecorder reports every trade attempt to recorder.
func WithTradeRecorder(recorder portssvc.OutcomeRecorder) TradeServiceOption {
	return func(s *tradeService) {
		s.recorder = recorder
	}
}

// WithTradeClock replaces time.Now, mainly for tests.
func WithTradeClock(now func() time.Time) TradeServiceOption {
	return func(s *tradeService) {
		s.now = now
	}
}

func withTradeLocks(locks *keyedMutex) TradeServiceOption {
	return func(s *tradeService) {
		s.locks = locks
	}
}

// NewTradeService creates a trade service settling in baseCurrency.
func NewTradeService(
	registry *domain.CurrencyRegistry,
	portfolioRepo portsrepo.PortfolioRepositoryFacade,
	rates portssvc.ExchangeRateReaderSvc,
	baseCurrency string,
	options ...TradeServiceOption,
) portssvc.TradeSvcFacade {
	svc := &tradeService{
		registry:      registry,
		portfolioRepo: portfolioRepo,
		rates:         rates,
		baseCurrency:  domain.NormalizeCode(baseCurrency),
		recorder:      NoopOutcomeRecorder{},
		locks:         newKeyedMutex(),
		now:           time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TradeSvcFacade = (*tradeService)(nil)

func (s *tradeService) Buy(ctx context.Context, userID, currencyCode string, amount decimal.Decimal) (*domain.TradeResult, error) {
	result, err := s.execute(ctx, domain.TradeSideBuy, userID, currencyCode, amount)
	s.record(ctx, domain.ActionBuy, userID, currencyCode, amount, result, err)
	return result, err
}

func (s *tradeService) Sell(ctx context.Context, userID, currencyCode string, amount decimal.Decimal) (*domain.TradeResult, error) {
	result, err := s.execute(ctx, domain.TradeSideSell, userID, currencyCode, amount)
	s.record(ctx, domain.ActionSell, userID, currencyCode, amount, result, err)
	return result, err
}

func (s *tradeService) execute(ctx context.Context, side domain.TradeSide, userID, currencyCode string, amount decimal.Decimal) (*domain.TradeResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: login required", apperrors.ErrUnauthorized)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, amount.String())
	}
	target, err := s.registry.Get(currencyCode)
	if err != nil {
		return nil, err
	}
	code := target.CurrencyCode
	if code == s.baseCurrency {
		return nil, fmt.Errorf("%w: cannot trade %s against itself", apperrors.ErrInvalidOperation, code)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	stored, err := s.portfolioRepo.FindPortfolio(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading portfolio: %w", err)
	}
	portfolio := stored.Clone()

	var rate domain.ExchangeRate
	var baseAmount decimal.Decimal
	switch side {
	case domain.TradeSideBuy:
		if rate, err = s.resolve(ctx, code); err != nil {
			return nil, err
		}
		baseAmount = amount.Mul(rate.Rate)
		if err := portfolio.Withdraw(s.baseCurrency, baseAmount); err != nil {
			return nil, err
		}
		if err := s.credit(portfolio, code, amount); err != nil {
			return nil, err
		}
	case domain.TradeSideSell:
		if available := portfolio.Balance(code); !portfolio.HasWallet(code) || available.LessThan(amount) {
			return nil, apperrors.NewInsufficientFunds(code, available, amount)
		}
		if rate, err = s.resolve(ctx, code); err != nil {
			return nil, err
		}
		baseAmount = amount.Mul(rate.Rate)
		if err := portfolio.Withdraw(code, amount); err != nil {
			return nil, err
		}
		if err := s.credit(portfolio, s.baseCurrency, baseAmount); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: unknown trade side %q", apperrors.ErrInvalidOperation, side)
	}

	executedAt := s.now().UTC()
	portfolio.Touch(executedAt)
	if err := s.portfolioRepo.SavePortfolio(ctx, portfolio); err != nil {
		return nil, wrapPersistence(err, "saving portfolio")
	}

	s.LogDebug(ctx, "Trade executed",
		slog.String("user_id", userID),
		slog.String("side", string(side)),
		slog.String("currency", code),
		slog.String("amount", amount.String()),
		slog.String("base_amount", baseAmount.String()))

	return &domain.TradeResult{
		Side:           side,
		UserID:         userID,
		CurrencyCode:   code,
		Amount:         amount,
		BaseCurrency:   s.baseCurrency,
		BaseAmount:     baseAmount,
		Rate:           rate.Rate,
		RateObservedAt: rate.ObservedAt,
		RateSource:     rate.Source,
		ExecutedAt:     executedAt,
		Balances:       portfolio.Wallets(),
	}, nil
}

// resolve returns the code→base rate from the snapshot current right now.
func (s *tradeService) resolve(ctx context.Context, code string) (domain.ExchangeRate, error) {
	table, err := s.rates.CurrentRateTable(ctx)
	if err != nil {
		return domain.ExchangeRate{}, err
	}
	rate, err := table.Resolve(code, s.baseCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateUnavailable) {
			return domain.ExchangeRate{}, fmt.Errorf("%w: %w", apperrors.ErrTradeRateUnavailable, err)
		}
		return domain.ExchangeRate{}, err
	}
	return rate, nil
}

// credit is the second leg of a trade. The first leg already moved funds out,
// so any failure here leaves the copy unbalanced and is reported as a
// consistency error; the caller drops the copy.
func (s *tradeService) credit(portfolio *domain.Portfolio, code string, amount decimal.Decimal) error {
	if !portfolio.HasWallet(code) {
		if err := portfolio.OpenWallet(code); err != nil {
			return fmt.Errorf("%w: opening %s wallet: %w", apperrors.ErrConsistency, code, err)
		}
	}
	if err := portfolio.Deposit(code, amount); err != nil {
		return fmt.Errorf("%w: crediting %s: %w", apperrors.ErrConsistency, code, err)
	}
	return nil
}

func (s *tradeService) record(ctx context.Context, action, userID, currencyCode string, amount decimal.Decimal, result *domain.TradeResult, err error) {
	o := domain.Outcome{
		Action:    action,
		SubjectID: userID,
		Success:   err == nil,
		Err:       err,
		Attributes: map[string]string{
			"currency": domain.NormalizeCode(currencyCode),
			"amount":   amount.String(),
			"base":     s.baseCurrency,
		},
	}
	if err != nil {
		o.FailureKind = apperrors.Kind(err)
	}
	if result != nil {
		o.Attributes["rate"] = result.Rate.String()
		o.Attributes["base_amount"] = result.BaseAmount.String()
	}
	s.recorder.Record(ctx, o)
}
