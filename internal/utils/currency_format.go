package utils

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// cryptoPrecision is used for codes go-money does not know (BTC, ETH, SOL).
const cryptoPrecision = 8

// CurrencyPrecision returns the number of minor-unit digits for code.
func CurrencyPrecision(code string) int {
	if c := money.GetCurrency(strings.ToUpper(code)); c != nil {
		return c.Fraction
	}
	return cryptoPrecision
}

// FormatWithCurrencyPrecision rounds amount to the precision of code.
// Example: 12.3456 USD returns "12.35"; 0.123456789 BTC returns "0.12345679".
func FormatWithCurrencyPrecision(amount decimal.Decimal, code string) string {
	return amount.StringFixed(int32(CurrencyPrecision(code)))
}

// FormatMoney renders amount with the currency's grapheme and separators when
// go-money knows the code ("$1,000.00"), otherwise as "0.01000000 BTC".
func FormatMoney(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(code)
	c := money.GetCurrency(code)
	if c == nil {
		return FormatWithCurrencyPrecision(amount, code) + " " + code
	}
	minor := amount.Shift(int32(c.Fraction)).Round(0).IntPart()
	return money.New(minor, code).Display()
}
