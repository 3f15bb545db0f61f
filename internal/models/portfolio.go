package models

import "github.com/shopspring/decimal"

// Portfolio is the stored form of a user's wallets, keyed by currency code.
type Portfolio struct {
	UserID    string            `json:"user_id" db:"user_id"`
	Wallets   map[string]Wallet `json:"wallets"`
	UpdatedAt Timestamp         `json:"updated_at,omitempty" db:"updated_at"`
}

// Wallet is one stored balance.
type Wallet struct {
	CurrencyCode string          `json:"currency_code" db:"currency_code"`
	Balance      decimal.Decimal `json:"balance" db:"balance"`
}
