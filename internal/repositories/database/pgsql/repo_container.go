package pgsql

import (
	portsrepo "github.com/SscSPs/valutatrade_hub/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:      newPgxUserRepository(dbPool),
		PortfolioRepo: newPgxPortfolioRepository(dbPool),
		RateRepo:      newPgxRateRepository(dbPool),
	}
}
