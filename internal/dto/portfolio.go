package dto

import (
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GetPortfolioParams selects the valuation currency.
type GetPortfolioParams struct {
	Base string `form:"base" binding:"omitempty,currencycode"`
}

// OpenWalletRequest opens an empty wallet.
type OpenWalletRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,currencycode"`
}

// WalletResponse is one wallet of a portfolio.
type WalletResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	Display      string          `json:"display"`
	Rate         decimal.Decimal `json:"rate"`
	Value        decimal.Decimal `json:"value"`
	Priced       bool            `json:"priced"`
}

// PortfolioResponse is a portfolio valued in BaseCurrency.
type PortfolioResponse struct {
	UserID       string           `json:"userID"`
	BaseCurrency string           `json:"baseCurrency"`
	Wallets      []WalletResponse `json:"wallets"`
	Total        decimal.Decimal  `json:"total"`
	TotalDisplay string           `json:"totalDisplay"`
	UpdatedAt    *time.Time       `json:"updatedAt,omitempty"`
}

// WalletListResponse is the plain wallet list of a portfolio.
type WalletListResponse struct {
	UserID  string   `json:"userID"`
	Wallets []Wallet `json:"wallets"`
}

// Wallet is a currency and its balance.
type Wallet struct {
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
}

// ToPortfolioResponse converts a valuation. format renders an amount in a currency.
func ToPortfolioResponse(v *domain.Valuation, format func(decimal.Decimal, string) string) PortfolioResponse {
	res := PortfolioResponse{
		UserID:       v.UserID,
		BaseCurrency: v.BaseCurrency,
		Wallets:      make([]WalletResponse, len(v.Wallets)),
		Total:        v.Total,
		TotalDisplay: format(v.Total, v.BaseCurrency),
	}
	for i, w := range v.Wallets {
		res.Wallets[i] = WalletResponse{
			CurrencyCode: w.CurrencyCode,
			Balance:      w.Balance,
			Display:      format(w.Balance, w.CurrencyCode),
			Rate:         w.Rate,
			Value:        w.Value,
			Priced:       w.Priced,
		}
	}
	return res
}

// ToWalletListResponse converts a portfolio to its wallet list.
func ToWalletListResponse(p *domain.Portfolio) WalletListResponse {
	wallets := p.Wallets()
	res := WalletListResponse{UserID: p.UserID(), Wallets: make([]Wallet, len(wallets))}
	for i, w := range wallets {
		res.Wallets[i] = Wallet{CurrencyCode: w.CurrencyCode, Balance: w.Balance}
	}
	return res
}
