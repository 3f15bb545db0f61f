package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portsrepo "github.com/SscSPs/valutatrade_hub/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/valutatrade_hub/internal/core/ports/services"
)

type portfolioService struct {
	BaseService
	registry      *domain.CurrencyRegistry
	portfolioRepo portsrepo.PortfolioRepositoryFacade
	rates         portssvc.ExchangeRateReaderSvc
	baseCurrency  string
	policy        domain.ValuationPolicy
	recorder      portssvc.OutcomeRecorder
	locks         *keyedMutex
	now           func() time.Time
}

// PortfolioServiceOption is a functional option for configuring the portfolio service
type PortfolioServiceOption func(*portfolioService)

// WithValuationPolicy selects lenient or strict valuation.
func WithValuationPolicy(policy domain.ValuationPolicy) PortfolioServiceOption {
	return func(s *portfolioService) {
		s.policy = policy
	}
}

// WithPortfolioRecorder reports wallet changes to recorder.
func WithPortfolioRecorder(recorder portssvc.OutcomeRecorder) PortfolioServiceOption {
	return func(s *portfolioService) {
		s.recorder = recorder
	}
}

func withPortfolioLocks(locks *keyedMutex) PortfolioServiceOption {
	return func(s *portfolioService) {
		s.locks = locks
	}
}

func NewPortfolioService(
	registry *domain.CurrencyRegistry,
	portfolioRepo portsrepo.PortfolioRepositoryFacade,
	rates portssvc.ExchangeRateReaderSvc,
	baseCurrency string,
	options ...PortfolioServiceOption,
) portssvc.PortfolioSvcFacade {
	svc := &portfolioService{
		registry:      registry,
		portfolioRepo: portfolioRepo,
		rates:         rates,
		baseCurrency:  domain.NormalizeCode(baseCurrency),
		policy:        domain.ValuationLenient,
		recorder:      NoopOutcomeRecorder{},
		locks:         newKeyedMutex(),
		now:           time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PortfolioSvcFacade = (*portfolioService)(nil)

func (s *portfolioService) GetPortfolio(ctx context.Context, userID string) (*domain.Portfolio, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: login required", apperrors.ErrUnauthorized)
	}
	return s.portfolioRepo.FindPortfolio(ctx, userID)
}

func (s *portfolioService) GetValuation(ctx context.Context, userID, base string) (*domain.Valuation, error) {
	if base == "" {
		base = s.baseCurrency
	}
	baseCurrency, err := s.registry.Get(base)
	if err != nil {
		return nil, err
	}

	portfolio, err := s.GetPortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}
	table, err := s.rates.CurrentRateTable(ctx)
	if err != nil {
		return nil, err
	}
	return portfolio.Valuate(baseCurrency.CurrencyCode, table, s.policy)
}

func (s *portfolioService) OpenWallet(ctx context.Context, userID, currencyCode string) (portfolio *domain.Portfolio, err error) {
	defer func() {
		o := domain.Outcome{
			Action:     domain.ActionOpenWallet,
			SubjectID:  userID,
			Success:    err == nil,
			Err:        err,
			Attributes: map[string]string{"currency": domain.NormalizeCode(currencyCode)},
		}
		if err != nil {
			o.FailureKind = apperrors.Kind(err)
		}
		s.recorder.Record(ctx, o)
	}()

	currency, err := s.registry.Get(currencyCode)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: login required", apperrors.ErrUnauthorized)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	stored, err := s.portfolioRepo.FindPortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}
	portfolio = stored.Clone()
	if err := portfolio.OpenWallet(currency.CurrencyCode); err != nil {
		return nil, err
	}
	portfolio.Touch(s.now().UTC())
	if err := s.portfolioRepo.SavePortfolio(ctx, portfolio); err != nil {
		return nil, wrapPersistence(err, "saving portfolio")
	}
	return portfolio, nil
}
