package mapping

import (
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	"github.com/SscSPs/valutatrade_hub/internal/models"
)

// ToModelPortfolio converts a domain Portfolio to its stored form.
func ToModelPortfolio(p *domain.Portfolio) models.Portfolio {
	wallets := p.Wallets()
	m := models.Portfolio{
		UserID:    p.UserID(),
		Wallets:   make(map[string]models.Wallet, len(wallets)),
		UpdatedAt: models.NewTimestamp(p.UpdatedAt()),
	}
	for _, w := range wallets {
		m.Wallets[w.CurrencyCode] = models.Wallet{CurrencyCode: w.CurrencyCode, Balance: w.Balance}
	}
	return m
}

// ToDomainPortfolio rebuilds a domain Portfolio. Entries whose currency_code is
// empty take the map key.
func ToDomainPortfolio(m models.Portfolio) (*domain.Portfolio, error) {
	wallets := make([]domain.Wallet, 0, len(m.Wallets))
	for code, w := range m.Wallets {
		if w.CurrencyCode == "" {
			w.CurrencyCode = code
		}
		wallets = append(wallets, domain.Wallet{CurrencyCode: w.CurrencyCode, Balance: w.Balance})
	}
	return domain.RestorePortfolio(m.UserID, wallets, m.UpdatedAt.Time)
}
