package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portssvc "github.com/SscSPs/valutatrade_hub/internal/core/ports/services"
	"github.com/SscSPs/valutatrade_hub/internal/core/services"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type PortfolioServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	portfolios *memoryPortfolios
	rates      *memoryRates
	recorder   *captureRecorder
}

func (suite *PortfolioServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.portfolios = newMemoryPortfolios(portfolioWith("alice", map[string]string{
		"USD": "400",
		"BTC": "0.01",
		"SOL": "2",
	}))
	suite.rates = newMemoryRates(rateOf("BTC", "USD", "60000"), rateOf("USD", "EUR", "0.5"))
	suite.recorder = &captureRecorder{}
}

func (suite *PortfolioServiceTestSuite) service(policy domain.ValuationPolicy) portssvc.PortfolioSvcFacade {
	registry := domain.DefaultCurrencyRegistry()
	rateSvc := services.NewExchangeRateService(registry, suite.rates)
	return services.NewPortfolioService(registry, suite.portfolios, rateSvc, "USD",
		services.WithValuationPolicy(policy),
		services.WithPortfolioRecorder(suite.recorder),
	)
}

func TestPortfolioServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PortfolioServiceTestSuite))
}

func (suite *PortfolioServiceTestSuite) TestGetValuation_LenientSkipsUnpriced() {
	valuation, err := suite.service(domain.ValuationLenient).GetValuation(suite.ctx, "alice", "")

	suite.Require().NoError(err)
	suite.Equal("USD", valuation.BaseCurrency)
	suite.True(dec("1000").Equal(valuation.Total), "total %s", valuation.Total)
	suite.Require().Len(valuation.Wallets, 3)
	suite.Equal("SOL", valuation.Wallets[1].CurrencyCode)
	suite.False(valuation.Wallets[1].Priced)
}

func (suite *PortfolioServiceTestSuite) TestGetValuation_StrictFails() {
	_, err := suite.service(domain.ValuationStrict).GetValuation(suite.ctx, "alice", "USD")
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (suite *PortfolioServiceTestSuite) TestGetValuation_OtherBase() {
	suite.portfolios = newMemoryPortfolios(portfolioWith("alice", map[string]string{"USD": "400"}))

	valuation, err := suite.service(domain.ValuationLenient).GetValuation(suite.ctx, "alice", "eur")
	suite.Require().NoError(err)
	suite.Equal("EUR", valuation.BaseCurrency)
	suite.True(dec("200").Equal(valuation.Total))

	_, err = suite.service(domain.ValuationLenient).GetValuation(suite.ctx, "alice", "XRP")
	suite.ErrorIs(err, apperrors.ErrCurrencyNotFound)
}

func (suite *PortfolioServiceTestSuite) TestGetPortfolio() {
	svc := suite.service(domain.ValuationLenient)

	p, err := svc.GetPortfolio(suite.ctx, "alice")
	suite.Require().NoError(err)
	suite.Len(p.Wallets(), 3)

	_, err = svc.GetPortfolio(suite.ctx, "")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = svc.GetPortfolio(suite.ctx, "ghost")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PortfolioServiceTestSuite) TestOpenWallet() {
	svc := suite.service(domain.ValuationLenient)

	p, err := svc.OpenWallet(suite.ctx, "alice", "eth")
	suite.Require().NoError(err)
	suite.True(p.HasWallet("ETH"))
	suite.True(suite.portfolios.get("alice").HasWallet("ETH"))
	suite.False(suite.portfolios.get("alice").UpdatedAt().Before(time.Now().Add(-time.Minute)))
	suite.Equal(domain.ActionOpenWallet, suite.recorder.last().Action)
	suite.True(suite.recorder.last().Success)

	_, err = svc.OpenWallet(suite.ctx, "alice", "ETH")
	suite.ErrorIs(err, apperrors.ErrDuplicateWallet)
	suite.Equal("DuplicateWallet", suite.recorder.last().FailureKind)

	_, err = svc.OpenWallet(suite.ctx, "alice", "XRP")
	suite.ErrorIs(err, apperrors.ErrCurrencyNotFound)
	suite.Equal(1, suite.portfolios.saveCount())
}
