package services

import (
	"context"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portsrepo "github.com/SscSPs/valutatrade_hub/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/valutatrade_hub/internal/core/ports/services"
	"github.com/SscSPs/valutatrade_hub/internal/platform/config"
)

// ContainerDeps are the collaborators that are not repositories.
type ContainerDeps struct {
	Registry *domain.CurrencyRegistry
	Sources  []portssvc.RateSource
	Recorder portssvc.OutcomeRecorder
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deps ContainerDeps) *portssvc.ServiceContainer {
	if deps.Registry == nil {
		deps.Registry = domain.DefaultCurrencyRegistry()
	}
	if deps.Recorder == nil {
		deps.Recorder = NoopOutcomeRecorder{}
	}

	policy := domain.ValuationLenient
	if cfg.StrictValuation {
		policy = domain.ValuationStrict
	}

	// Trades and wallet changes for one user share a lock.
	locks := newKeyedMutex()

	container := &portssvc.ServiceContainer{}
	container.Currency = NewCurrencyService(deps.Registry)

	rateOptions := []ExchangeRateServiceOption{WithRatesTTL(cfg.RatesTTL)}
	if len(deps.Sources) > 0 {
		updater := NewRatesUpdater(repos.RateRepo, deps.Sources, WithUpdaterRecorder(deps.Recorder))
		rateOptions = append(rateOptions, WithRatesUpdater(updater))
	}
	container.ExchangeRate = NewExchangeRateService(deps.Registry, repos.RateRepo, rateOptions...)

	container.Portfolio = NewPortfolioService(deps.Registry, repos.PortfolioRepo, container.ExchangeRate, cfg.BaseCurrency,
		WithValuationPolicy(policy),
		WithPortfolioRecorder(deps.Recorder),
		withPortfolioLocks(locks),
	)
	container.Trade = NewTradeService(deps.Registry, repos.PortfolioRepo, container.ExchangeRate, cfg.BaseCurrency,
		WithTradeRecorder(deps.Recorder),
		withTradeLocks(locks),
	)
	container.User = NewUserService(repos.UserRepo, repos.PortfolioRepo, cfg.BaseCurrency,
		WithSignupBonus(cfg.SignupBonus),
		WithUserRecorder(deps.Recorder),
	)
	container.Token = NewTokenService(cfg)

	return container
}

// UpdateRunnerFunc adapts a refresh function, such as
// ExchangeRateSvcFacade.RefreshRates, to UpdateRunner.
type UpdateRunnerFunc func(ctx context.Context, source string) (*domain.RefreshReport, error)

func (f UpdateRunnerFunc) RunUpdate(ctx context.Context, source string) (*domain.RefreshReport, error) {
	return f(ctx, source)
}
