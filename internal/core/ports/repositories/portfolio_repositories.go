package repositories

import (
	"context"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
)

// PortfolioReader loads portfolios.
type PortfolioReader interface {
	// FindPortfolio returns a freshly loaded portfolio, or apperrors.ErrNotFound.
	FindPortfolio(ctx context.Context, userID string) (*domain.Portfolio, error)
}

// PortfolioWriter persists portfolios as one unit: every wallet of the portfolio
// is replaced together.
type PortfolioWriter interface {
	SavePortfolio(ctx context.Context, portfolio *domain.Portfolio) error
}

// PortfolioRepositoryFacade combines portfolio reads and writes.
type PortfolioRepositoryFacade interface {
	PortfolioReader
	PortfolioWriter
}
