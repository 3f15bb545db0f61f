package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portssvc "github.com/SscSPs/valutatrade_hub/internal/core/ports/services"
	"github.com/SscSPs/valutatrade_hub/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	name  string
	rates []domain.ExchangeRate
	err   error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) FetchRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	return f.rates, f.err
}

var updateNow = time.Date(2025, 10, 9, 10, 31, 12, 0, time.UTC)

func newUpdater(repo *memoryRates, recorder *captureRecorder, sources ...portssvc.RateSource) *services.RatesUpdater {
	return services.NewRatesUpdater(repo, sources,
		services.WithUpdaterRecorder(recorder),
		services.WithUpdaterClock(func() time.Time { return updateNow }),
	)
}

func cryptoSource() *fakeSource {
	return &fakeSource{name: "coingecko", rates: []domain.ExchangeRate{
		{FromCurrencyCode: "BTC", ToCurrencyCode: "USD", Rate: dec("59337.21"), ObservedAt: updateNow, Source: "CoinGecko"},
		{FromCurrencyCode: "ETH", ToCurrencyCode: "USD", Rate: dec("3720"), ObservedAt: updateNow, Source: "CoinGecko"},
	}}
}

func fiatSource() *fakeSource {
	return &fakeSource{name: "exchangerate", rates: []domain.ExchangeRate{
		{FromCurrencyCode: "EUR", ToCurrencyCode: "USD", Rate: dec("1.0786"), ObservedAt: updateNow, Source: "ExchangeRate-API"},
	}}
}

func TestRatesUpdater_AllSources(t *testing.T) {
	repo := newMemoryRates()
	recorder := &captureRecorder{}
	updater := newUpdater(repo, recorder, cryptoSource(), fiatSource())

	report, err := updater.RunUpdate(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, 3, report.Saved)
	assert.Empty(t, report.Failed())
	assert.Equal(t, updateNow, report.RefreshedAt)

	snap, _ := repo.LoadSnapshot(context.Background())
	assert.Equal(t, 3, snap.Len())
	assert.Equal(t, updateNow, snap.LastRefresh)

	require.Len(t, repo.history, 3)
	for _, rec := range repo.history {
		assert.True(t, strings.HasPrefix(rec.ID, string(rec.Pair())+"_"), rec.ID)
	}

	outcome := recorder.last()
	assert.Equal(t, domain.ActionRefreshRates, outcome.Action)
	assert.True(t, outcome.Success)
	assert.Equal(t, "all", outcome.Attributes["source"])
	assert.Equal(t, "3", outcome.Attributes["saved"])
}

func TestRatesUpdater_SkipsFailingSource(t *testing.T) {
	repo := newMemoryRates()
	broken := &fakeSource{name: "exchangerate", err: &apperrors.APIRequestError{Source: "ExchangeRate-API", Reason: "timeout"}}
	updater := newUpdater(repo, &captureRecorder{}, cryptoSource(), broken)

	report, err := updater.RunUpdate(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, 2, report.Saved)
	failed := report.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "exchangerate", failed[0].Source)
	assert.ErrorIs(t, failed[0].Err, apperrors.ErrAPIUnavailable)
}

func TestRatesUpdater_AllSourcesFail(t *testing.T) {
	repo := new(MockRateRepository)
	recorder := &captureRecorder{}
	updater := services.NewRatesUpdater(repo, []portssvc.RateSource{
		&fakeSource{name: "coingecko", err: &apperrors.APIRequestError{Source: "CoinGecko", Reason: "HTTP 500"}},
	}, services.WithUpdaterRecorder(recorder))

	report, err := updater.RunUpdate(context.Background(), "")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAPIUnavailable)
	assert.Equal(t, 0, report.Saved)
	assert.Equal(t, "APIUnavailable", recorder.last().FailureKind)
	repo.AssertNotCalled(t, "SaveSnapshot", mock.Anything, mock.Anything, mock.Anything)
}

func TestRatesUpdater_SelectSource(t *testing.T) {
	repo := newMemoryRates()
	updater := newUpdater(repo, &captureRecorder{}, cryptoSource(), fiatSource())

	report, err := updater.RunUpdate(context.Background(), "ExchangeRate")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Saved)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "exchangerate", report.Results[0].Source)

	_, err = updater.RunUpdate(context.Background(), "bloomberg")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "coingecko, exchangerate")
}

func TestRatesUpdater_SaveFailure(t *testing.T) {
	repo := new(MockRateRepository)
	repo.On("SaveSnapshot", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError).Once()
	updater := services.NewRatesUpdater(repo, []portssvc.RateSource{cryptoSource()})

	_, err := updater.RunUpdate(context.Background(), "")

	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	repo.AssertNotCalled(t, "AppendHistory", mock.Anything, mock.Anything)
}

func TestRatesUpdater_NoSources(t *testing.T) {
	updater := services.NewRatesUpdater(newMemoryRates(), nil)
	_, err := updater.RunUpdate(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidOperation)
}
