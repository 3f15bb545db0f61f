package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeSide is the direction of a trade relative to the traded currency.
type TradeSide string

const (
	TradeSideBuy  TradeSide = "BUY"
	TradeSideSell TradeSide = "SELL"
)

// TradeResult describes an executed trade. BaseAmount is what was paid (buy) or
// received (sell) in BaseCurrency.
type TradeResult struct {
	Side           TradeSide       `json:"side"`
	UserID         string          `json:"userID"`
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
