package dto

import (
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TradeRequest is the payload of a buy or sell.
type TradeRequest struct {
	CurrencyCode string          `json:"currencyCode" binding:"required,currencycode"`
	Amount       decimal.Decimal `json:"amount"`
}

// TradeResponse reports an executed trade.
type TradeResponse struct {
	Side           string          `json:"side"`
	CurrencyCode   string          `json:"currencyCode"`
	Amount         decimal.Decimal `json:"amount"`
	BaseCurrency   string          `json:"baseCurrency"`
	BaseAmount     decimal.Decimal `json:"baseAmount"`
	Rate           decimal.Decimal `json:"rate"`
	RateObservedAt time.Time       `json:"rateObservedAt"`
	RateSource     string          `json:"rateSource"`
	ExecutedAt     time.Time       `json:"executedAt"`
	Balances       []Wallet        `json:"balances"`
}

// ToTradeResponse converts a domain.TradeResult.
func ToTradeResponse(r *domain.TradeResult) TradeResponse {
	res := TradeResponse{
		Side:           string(r.Side),
		CurrencyCode:   r.CurrencyCode,
		Amount:         r.Amount,
		BaseCurrency:   r.BaseCurrency,
		BaseAmount:     r.BaseAmount,
		Rate:           r.Rate,
		RateObservedAt: r.RateObservedAt,
		RateSource:     r.RateSource,
		ExecutedAt:     r.ExecutedAt,
		Balances:       make([]Wallet, len(r.Balances)),
	}
	for i, w := range r.Balances {
		res.Balances[i] = Wallet{CurrencyCode: w.CurrencyCode, Balance: w.Balance}
	}
	return res
}
