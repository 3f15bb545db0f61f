package services

import (
	"context"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portssvc "github.com/SscSPs/valutatrade_hub/internal/core/ports/services"
)

type currencyService struct {
	registry *domain.CurrencyRegistry
}

// NewCurrencyService exposes registry through the service layer.
func NewCurrencyService(registry *domain.CurrencyRegistry) portssvc.CurrencySvcFacade {
	return &currencyService{registry: registry}
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	c, err := s.registry.Get(currencyCode)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.registry.List(), nil
}
