package jsonfile

import (
	portsrepo "github.com/SscSPs/valutatrade_hub/internal/core/ports/repositories"
)

// Paths locates the data files.
type Paths struct {
	Users        string
	Portfolios   string
	Rates        string
	RatesHistory string
}

// NewRepositoryProvider builds file-backed repositories. Each file gets exactly
// one repository so its lock covers every writer in the process.
func NewRepositoryProvider(paths Paths) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:      newFileUserRepository(paths.Users),
		PortfolioRepo: newFilePortfolioRepository(paths.Portfolios),
		RateRepo:      newFileRateRepository(paths.Rates, paths.RatesHistory),
	}
}
