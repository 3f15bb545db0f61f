package jsonfile

import (
	"context"
	"fmt"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portsrepo "github.com/SscSPs/valutatrade_hub/internal/core/ports/repositories"
	"github.com/SscSPs/valutatrade_hub/internal/models"
	"github.com/SscSPs/valutatrade_hub/internal/utils/mapping"
)

// FilePortfolioRepository stores portfolios as a JSON array, one entry per user.
type FilePortfolioRepository struct {
	file *jsonFile
}

func newFilePortfolioRepository(path string) *FilePortfolioRepository {
	return &FilePortfolioRepository{file: newJSONFile(path)}
}

var _ portsrepo.PortfolioRepositoryFacade = (*FilePortfolioRepository)(nil)

func (r *FilePortfolioRepository) FindPortfolio(ctx context.Context, userID string) (*domain.Portfolio, error) {
	r.file.mu.Lock()
	var portfolios []models.Portfolio
	err := r.file.read(&portfolios)
	r.file.mu.Unlock()
	if err != nil {
		return nil, err
	}

	for _, p := range portfolios {
		if p.UserID != userID {
			continue
		}
		portfolio, err := mapping.ToDomainPortfolio(p)
		if err != nil {
			return nil, fmt.Errorf("%w: portfolio of %s: %v", apperrors.ErrPersistence, userID, err)
		}
		return portfolio, nil
	}
	return nil, apperrors.NewNotFoundError("portfolio for user " + userID)
}

// SavePortfolio replaces the user's entry, or appends it when new.
func (r *FilePortfolioRepository) SavePortfolio(ctx context.Context, portfolio *domain.Portfolio) error {
	record := mapping.ToModelPortfolio(portfolio)

	r.file.mu.Lock()
	defer r.file.mu.Unlock()

	var portfolios []models.Portfolio
	if err := r.file.read(&portfolios); err != nil {
		return err
	}
	replaced := false
	for i := range portfolios {
		if portfolios[i].UserID == record.UserID {
			portfolios[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		portfolios = append(portfolios, record)
	}
	return r.file.write(portfolios)
}
