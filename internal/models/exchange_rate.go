package models

import (
	"github.com/shopspring/decimal"
)

// RatesFile is the stored snapshot: {"pairs": {"BTC_USD": {...}}, "last_refresh": "..."}.
type RatesFile struct {
	Pairs       map[string]RatePair `json:"pairs"`
	LastRefresh Timestamp           `json:"last_refresh"`
}

// RatePair is one stored directed rate.
type RatePair struct {
	Rate      decimal.Decimal `json:"rate"`
	UpdatedAt Timestamp       `json:"updated_at"`
	Source    string          `json:"source,omitempty"`
}

// ExchangeRateRecord is one entry of the append-only rate history.
type ExchangeRateRecord struct {
	ID           string          `json:"id" db:"record_id"`
	FromCurrency string          `json:"from_currency" db:"from_currency_code"`
	ToCurrency   string          `json:"to_currency" db:"to_currency_code"`
	Rate         decimal.Decimal `json:"rate" db:"rate"`
	Timestamp    Timestamp       `json:"timestamp" db:"observed_at"`
	Source       string          `json:"source" db:"source"`
}
