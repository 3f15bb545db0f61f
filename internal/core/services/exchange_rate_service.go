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
)

// exchangeRateService reads the stored snapshot on every call; nothing is cached.
type exchangeRateService struct {
	BaseService
	registry *domain.CurrencyRegistry
	rateRepo portsrepo.RateRepositoryFacade
	updater  UpdateRunner
	ttl      time.Duration
	now      func() time.Time
}

// ExchangeRateServiceOption is a functional option for configuring the exchange rate service
type ExchangeRateServiceOption func(*exchangeRateService)

// WithRatesTTL sets the age after which a quote is reported as stale.
func WithRatesTTL(ttl time.Duration) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.ttl = ttl
	}
}

// WithRatesUpdater enables RefreshRates.
func WithRatesUpdater(updater UpdateRunner) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.updater = updater
	}
}

// WithRateClock replaces time.Now, mainly for tests.
func WithRateClock(now func() time.Time) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.now = now
	}
}

// NewExchangeRateService creates a new exchange rate service with the provided options
func NewExchangeRateService(registry *domain.CurrencyRegistry, rateRepo portsrepo.RateRepositoryFacade, options ...ExchangeRateServiceOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		registry: registry,
		rateRepo: rateRepo,
		now:      time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func (s *exchangeRateService) CurrentRateTable(ctx context.Context) (*domain.RateTable, error) {
	snapshot, err := s.rateRepo.LoadSnapshot(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrPersistence) {
			err = fmt.Errorf("%w: loading rate snapshot: %w", apperrors.ErrPersistence, err)
		}
		s.LogError(ctx, err, "Failed to load rate snapshot")
		return nil, err
	}
	return domain.NewRateTable(s.registry, snapshot, s.now), nil
}

func (s *exchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.RateQuote, error) {
	table, err := s.CurrentRateTable(ctx)
	if err != nil {
		return nil, err
	}
	rate, err := table.Resolve(fromCode, toCode)
	if err != nil {
		s.LogDebug(ctx, "Rate not resolved",
			slog.String("from", fromCode),
			slog.String("to", toCode),
			slog.String("error", err.Error()))
		return nil, err
	}
	quote := &domain.RateQuote{ExchangeRate: rate}
	if rate.Source != domain.IdentitySource {
		quote.Stale = rate.IsStale(s.ttl, s.now())
	}
	return quote, nil
}

func (s *exchangeRateService) ListExchangeRates(ctx context.Context, filter domain.RateFilter) (*domain.RateListing, error) {
	if filter.Currency != "" {
		c, err := s.registry.Get(filter.Currency)
		if err != nil {
			return nil, err
		}
		filter.Currency = c.CurrencyCode
	}
	if filter.Top < 0 {
		return nil, apperrors.NewValidationError("top must not be negative")
	}

	table, err := s.CurrentRateTable(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := table.Snapshot()
	return &domain.RateListing{
		Rates:       snapshot.Filter(filter),
		LastRefresh: snapshot.LastRefresh,
	}, nil
}

func (s *exchangeRateService) RefreshRates(ctx context.Context, source string) (*domain.RefreshReport, error) {
	if s.updater == nil {
		return nil, fmt.Errorf("%w: no rate sources configured", apperrors.ErrInvalidOperation)
	}
	return s.updater.RunUpdate(ctx, source)
}
