package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portsrepo "github.com/SscSPs/valutatrade_hub/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/valutatrade_hub/internal/core/ports/services"
	"github.com/SscSPs/valutatrade_hub/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var tradeNow = time.Date(2025, 10, 9, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func rateOf(from, to, value string) domain.ExchangeRate {
	return domain.ExchangeRate{
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             dec(value),
		ObservedAt:       tradeNow.Add(-time.Minute),
		Source:           "CoinGecko",
	}
}

func portfolioWith(userID string, balances map[string]string) *domain.Portfolio {
	p := domain.NewPortfolio(userID)
	for code, amount := range balances {
		if d := dec(amount); d.IsPositive() {
			_ = p.Deposit(code, d)
		} else {
			_ = p.OpenWallet(code)
		}
	}
	return p
}

// --- Test Suite ---
type TradeServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	portfolios *memoryPortfolios
	rates      *memoryRates
	recorder   *captureRecorder
	service    portssvc.TradeSvcFacade
}

func (suite *TradeServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.portfolios = newMemoryPortfolios(portfolioWith("alice", map[string]string{"USD": "1000"}))
	suite.rates = newMemoryRates(
		rateOf("BTC", "USD", "60000"),
		rateOf("USD", "EUR", "0.5"),
	)
	suite.recorder = &captureRecorder{}
	suite.service = suite.newService(suite.portfolios)
}

func (suite *TradeServiceTestSuite) newService(repo portsrepo.PortfolioRepositoryFacade) portssvc.TradeSvcFacade {
	registry := domain.DefaultCurrencyRegistry()
	clock := func() time.Time { return tradeNow }
	rateSvc := services.NewExchangeRateService(registry, suite.rates, services.WithRateClock(clock))
	return services.NewTradeService(registry, repo, rateSvc, "USD",
		services.WithTradeRecorder(suite.recorder),
		services.WithTradeClock(clock),
	)
}

func TestTradeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TradeServiceTestSuite))
}

// --- Buy Tests ---
func (suite *TradeServiceTestSuite) TestBuy_Success() {
	result, err := suite.service.Buy(suite.ctx, "alice", "btc", dec("0.01"))

	suite.Require().NoError(err)
	suite.Equal(domain.TradeSideBuy, result.Side)
	suite.Equal("BTC", result.CurrencyCode)
	suite.Equal("USD", result.BaseCurrency)
	suite.True(dec("600").Equal(result.BaseAmount), "cost %s", result.BaseAmount)
	suite.True(dec("60000").Equal(result.Rate))
	suite.Equal(tradeNow.Add(-time.Minute), result.RateObservedAt)
	suite.Equal(tradeNow, result.ExecutedAt)

	stored := suite.portfolios.get("alice")
	suite.True(dec("400").Equal(stored.Balance("USD")))
	suite.True(dec("0.01").Equal(stored.Balance("BTC")))
	suite.Equal(tradeNow, stored.UpdatedAt())

	outcome := suite.recorder.last()
	suite.Equal(domain.ActionBuy, outcome.Action)
	suite.True(outcome.Success)
	suite.Equal("alice", outcome.SubjectID)
	suite.Equal("600", outcome.Attributes["base_amount"])
}

func (suite *TradeServiceTestSuite) TestBuyThenSell_ConservesBase() {
	_, err := suite.service.Buy(suite.ctx, "alice", "BTC", dec("0.01"))
	suite.Require().NoError(err)

	result, err := suite.service.Sell(suite.ctx, "alice", "BTC", dec("0.01"))
	suite.Require().NoError(err)
	suite.True(dec("600").Equal(result.BaseAmount))

	stored := suite.portfolios.get("alice")
	suite.True(dec("1000").Equal(stored.Balance("USD")))
	suite.True(stored.HasWallet("BTC"))
	suite.True(stored.Balance("BTC").IsZero())
}

func (suite *TradeServiceTestSuite) TestBuy_InsufficientFunds() {
	suite.portfolios = newMemoryPortfolios(portfolioWith("bob", map[string]string{"USD": "100"}))
	suite.service = suite.newService(suite.portfolios)

	result, err := suite.service.Buy(suite.ctx, "bob", "BTC", dec("1"))

	suite.Nil(result)
	suite.Require().ErrorIs(err, apperrors.ErrInsufficientFunds)
	var insufficient *apperrors.InsufficientFundsError
	suite.Require().True(errors.As(err, &insufficient))
	suite.Equal("USD", insufficient.Code)
	suite.True(dec("100").Equal(insufficient.Available))
	suite.True(dec("60000").Equal(insufficient.Required))

	stored := suite.portfolios.get("bob")
	suite.True(dec("100").Equal(stored.Balance("USD")))
	suite.False(stored.HasWallet("BTC"))
	suite.Equal(0, suite.portfolios.saveCount())

	outcome := suite.recorder.last()
	suite.False(outcome.Success)
	suite.Equal("InsufficientFunds", outcome.FailureKind)
}

func (suite *TradeServiceTestSuite) TestBuy_InverseRate() {
	result, err := suite.service.Buy(suite.ctx, "alice", "EUR", dec("10"))

	suite.Require().NoError(err)
	suite.True(dec("2").Equal(result.Rate))
	suite.True(dec("20").Equal(result.BaseAmount))
	stored := suite.portfolios.get("alice")
	suite.True(dec("980").Equal(stored.Balance("USD")))
	suite.True(dec("10").Equal(stored.Balance("EUR")))
}

func (suite *TradeServiceTestSuite) TestTrade_ValidationFailures() {
	tests := []struct {
		name   string
		code   string
		amount string
		target error
	}{
		{"zero amount", "BTC", "0", apperrors.ErrInvalidAmount},
		{"negative amount", "BTC", "-1", apperrors.ErrInvalidAmount},
		{"unknown currency", "XRP", "1", apperrors.ErrCurrencyNotFound},
		{"base against base", "usd", "1", apperrors.ErrInvalidOperation},
	}
	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := suite.service.Buy(suite.ctx, "alice", tc.code, dec(tc.amount))
			suite.ErrorIs(err, tc.target)
			_, err = suite.service.Sell(suite.ctx, "alice", tc.code, dec(tc.amount))
			suite.ErrorIs(err, tc.target)
		})
	}
	suite.Equal(0, suite.portfolios.saveCount())
}

func (suite *TradeServiceTestSuite) TestBuy_UnpricedCurrencyIsTradeRateUnavailable() {
	_, err := suite.service.Buy(suite.ctx, "alice", "SOL", dec("1"))

	suite.Require().ErrorIs(err, apperrors.ErrTradeRateUnavailable)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.NotErrorIs(err, apperrors.ErrCurrencyNotFound)
	suite.Equal("TradeRateUnavailable", suite.recorder.last().FailureKind)
	suite.True(dec("1000").Equal(suite.portfolios.get("alice").Balance("USD")))
}

func (suite *TradeServiceTestSuite) TestBuy_CorruptRate() {
	suite.rates = newMemoryRates(rateOf("BTC", "USD", "0"))
	suite.service = suite.newService(suite.portfolios)

	_, err := suite.service.Buy(suite.ctx, "alice", "BTC", dec("1"))
	suite.ErrorIs(err, apperrors.ErrCorruptRate)
	suite.Equal(0, suite.portfolios.saveCount())
}

// --- Sell Tests ---
func (suite *TradeServiceTestSuite) TestSell_WithoutWallet() {
	_, err := suite.service.Sell(suite.ctx, "alice", "BTC", dec("0.5"))

	var insufficient *apperrors.InsufficientFundsError
	suite.Require().True(errors.As(err, &insufficient))
	suite.Equal("BTC", insufficient.Code)
	suite.True(insufficient.Available.IsZero())
	suite.True(dec("0.5").Equal(insufficient.Required))
}

func (suite *TradeServiceTestSuite) TestSell_MoreThanHeld() {
	suite.portfolios = newMemoryPortfolios(portfolioWith("alice", map[string]string{"USD": "0", "BTC": "0.1"}))
	suite.service = suite.newService(suite.portfolios)

	_, err := suite.service.Sell(suite.ctx, "alice", "BTC", dec("0.2"))
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.True(dec("0.1").Equal(suite.portfolios.get("alice").Balance("BTC")))
}

func (suite *TradeServiceTestSuite) TestSell_OpensBaseWallet() {
	suite.portfolios = newMemoryPortfolios(portfolioWith("carol", map[string]string{"BTC": "0.5"}))
	suite.service = suite.newService(suite.portfolios)

	result, err := suite.service.Sell(suite.ctx, "carol", "BTC", dec("0.5"))
	suite.Require().NoError(err)
	suite.True(dec("30000").Equal(result.BaseAmount))
	suite.True(dec("30000").Equal(suite.portfolios.get("carol").Balance("USD")))
}

// --- Persistence Tests ---
func (suite *TradeServiceTestSuite) TestBuy_SaveFailureIsPersistenceError() {
	repo := new(MockPortfolioRepository)
	repo.On("FindPortfolio", mock.Anything, "alice").
		Return(portfolioWith("alice", map[string]string{"USD": "1000"}), nil).Once()
	repo.On("SavePortfolio", mock.Anything, mock.AnythingOfType("*domain.Portfolio")).
		Return(assert.AnError).Once()
	service := suite.newService(repo)

	_, err := service.Buy(suite.ctx, "alice", "BTC", dec("0.01"))

	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.ErrorIs(err, assert.AnError)
	repo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestBuy_UnknownUser() {
	_, err := suite.service.Buy(suite.ctx, "nobody", "BTC", dec("0.01"))
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Concurrency ---
func TestTradeService_ConcurrentBuysNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	registry := domain.DefaultCurrencyRegistry()
	portfolios := newMemoryPortfolios(portfolioWith("alice", map[string]string{"USD": "1000"}))
	rateSvc := services.NewExchangeRateService(registry, newMemoryRates(rateOf("BTC", "USD", "60000")))
	service := services.NewTradeService(registry, portfolios, rateSvc, "USD")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Buy(ctx, "alice", "BTC", dec("0.001"))
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
		}()
	}
	wg.Wait()

	require.Equal(t, 16, succeeded)
	stored := portfolios.get("alice")
	assert.True(t, dec("40").Equal(stored.Balance("USD")), "USD %s", stored.Balance("USD"))
	assert.True(t, dec("0.016").Equal(stored.Balance("BTC")), "BTC %s", stored.Balance("BTC"))
}
