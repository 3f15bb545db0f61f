package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portssvc "github.com/SscSPs/valutatrade_hub/internal/core/ports/services"
	"github.com/SscSPs/valutatrade_hub/internal/core/services"
	"github.com/SscSPs/valutatrade_hub/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func newTestConfig() *config.Config {
	return &config.Config{
		BaseCurrency:      "USD",
		SignupBonus:       dec("1000"),
		RatesTTL:          5 * time.Minute,
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "valutatrade-hub",
	}
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	mockRateRepo *MockRateRepository
	service      portssvc.ExchangeRateSvcFacade
	now          time.Time
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2025, 10, 9, 12, 0, 0, 0, time.UTC)
	suite.mockRateRepo = new(MockRateRepository)
	suite.service = services.NewExchangeRateService(domain.DefaultCurrencyRegistry(), suite.mockRateRepo,
		services.WithRatesTTL(5*time.Minute),
		services.WithRateClock(func() time.Time { return suite.now }),
	)
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}

func (suite *ExchangeRateServiceTestSuite) snapshot() *domain.RateSnapshot {
	s := domain.NewRateSnapshot()
	s.Merge([]domain.ExchangeRate{
		{FromCurrencyCode: "BTC", ToCurrencyCode: "USD", Rate: dec("59337.21"), ObservedAt: suite.now.Add(-time.Minute), Source: "CoinGecko"},
		{FromCurrencyCode: "ETH", ToCurrencyCode: "USD", Rate: dec("3720"), ObservedAt: suite.now.Add(-time.Hour), Source: "CoinGecko"},
		{FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: dec("1.0786"), ObservedAt: suite.now.Add(-time.Minute), Source: "ExchangeRate-API"},
	}, suite.now.Add(-time.Minute))
	return s
}

// --- GetExchangeRate Tests ---
func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_Direct() {
	suite.mockRateRepo.On("LoadSnapshot", suite.ctx).Return(suite.snapshot(), nil).Once()

	quote, err := suite.service.GetExchangeRate(suite.ctx, "btc", "usd")

	suite.Require().NoError(err)
	suite.True(dec("59337.21").Equal(quote.Rate))
	suite.False(quote.Stale)
	suite.Equal("CoinGecko", quote.Source)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_InverseAndStale() {
	suite.mockRateRepo.On("LoadSnapshot", suite.ctx).Return(suite.snapshot(), nil).Once()

	quote, err := suite.service.GetExchangeRate(suite.ctx, "USD", "ETH")

	suite.Require().NoError(err)
	suite.True(dec("1").Div(dec("3720")).Equal(quote.Rate))
	suite.True(quote.Stale)
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_Identity() {
	suite.mockRateRepo.On("LoadSnapshot", suite.ctx).Return(domain.NewRateSnapshot(), nil).Once()

	quote, err := suite.service.GetExchangeRate(suite.ctx, "EUR", "EUR")

	suite.Require().NoError(err)
	suite.True(dec("1").Equal(quote.Rate))
	suite.False(quote.Stale)
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_Errors() {
	suite.mockRateRepo.On("LoadSnapshot", suite.ctx).Return(suite.snapshot(), nil)

	_, err := suite.service.GetExchangeRate(suite.ctx, "XRP", "USD")
	suite.ErrorIs(err, apperrors.ErrCurrencyNotFound)

	_, err = suite.service.GetExchangeRate(suite.ctx, "SOL", "USD")
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.NotErrorIs(err, apperrors.ErrTradeRateUnavailable)
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_RereadsSnapshotEveryCall() {
	first := domain.NewRateSnapshot()
	second := suite.snapshot()
	suite.mockRateRepo.On("LoadSnapshot", suite.ctx).Return(first, nil).Once()
	suite.mockRateRepo.On("LoadSnapshot", suite.ctx).Return(second, nil).Once()

	_, err := suite.service.GetExchangeRate(suite.ctx, "BTC", "USD")
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)

	_, err = suite.service.GetExchangeRate(suite.ctx, "BTC", "USD")
	suite.NoError(err)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetExchangeRate_LoadFailure() {
	suite.mockRateRepo.On("LoadSnapshot", suite.ctx).Return(nil, assert.AnError).Once()

	_, err := suite.service.GetExchangeRate(suite.ctx, "BTC", "USD")
	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.ErrorIs(err, assert.AnError)
}

// --- ListExchangeRates Tests ---
func (suite *ExchangeRateServiceTestSuite) TestListExchangeRates() {
	suite.mockRateRepo.On("LoadSnapshot", suite.ctx).Return(suite.snapshot(), nil)

	all, err := suite.service.ListExchangeRates(suite.ctx, domain.RateFilter{})
	suite.Require().NoError(err)
	suite.Len(all.Rates, 3)
	suite.Equal(domain.PairKey("BTC_USD"), all.Rates[0].Pair())
	suite.Equal(suite.now.Add(-time.Minute), all.LastRefresh)

	top, err := suite.service.ListExchangeRates(suite.ctx, domain.RateFilter{Top: 2})
	suite.Require().NoError(err)
	suite.Require().Len(top.Rates, 2)
	suite.Equal("BTC", top.Rates[0].FromCurrencyCode)
	suite.Equal("ETH", top.Rates[1].FromCurrencyCode)

	eur, err := suite.service.ListExchangeRates(suite.ctx, domain.RateFilter{Currency: "eur"})
	suite.Require().NoError(err)
	suite.Require().Len(eur.Rates, 1)
	suite.Equal("EUR", eur.Rates[0].FromCurrencyCode)

	_, err = suite.service.ListExchangeRates(suite.ctx, domain.RateFilter{Currency: "XRP"})
	suite.ErrorIs(err, apperrors.ErrCurrencyNotFound)
}

// --- RefreshRates Tests ---
func (suite *ExchangeRateServiceTestSuite) TestRefreshRates_WithoutUpdater() {
	_, err := suite.service.RefreshRates(suite.ctx, "")
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
}

func (suite *ExchangeRateServiceTestSuite) TestRefreshRates_DelegatesToUpdater() {
	var gotSource string
	runner := services.UpdateRunnerFunc(func(ctx context.Context, source string) (*domain.RefreshReport, error) {
		gotSource = source
		return &domain.RefreshReport{Saved: 3}, nil
	})
	svc := services.NewExchangeRateService(domain.DefaultCurrencyRegistry(), suite.mockRateRepo, services.WithRatesUpdater(runner))

	report, err := svc.RefreshRates(suite.ctx, "coingecko")

	suite.Require().NoError(err)
	suite.Equal(3, report.Saved)
	suite.Equal("coingecko", gotSource)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "LoadSnapshot", mock.Anything)
}

func TestCurrencyService(t *testing.T) {
	svc := services.NewCurrencyService(domain.DefaultCurrencyRegistry())

	btc, err := svc.GetCurrencyByCode(context.Background(), "btc")
	assert.NoError(t, err)
	assert.Equal(t, "[CRYPTO] BTC — Bitcoin (Algo: SHA-256, MCAP: 1.12e+12)", btc.DisplayInfo())

	_, err = svc.GetCurrencyByCode(context.Background(), "XRP")
	assert.ErrorIs(t, err, apperrors.ErrCurrencyNotFound)

	all, err := svc.ListCurrencies(context.Background())
	assert.NoError(t, err)
	assert.Len(t, all, 7)
}
