package domain

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
)

// CurrencyKind tells fiat and crypto currencies apart.
type CurrencyKind string

const (
	CurrencyKindFiat   CurrencyKind = "FIAT"
	CurrencyKindCrypto CurrencyKind = "CRYPTO"
)

// FiatDetails is the metadata carried by fiat currencies.
type FiatDetails struct {
	IssuingCountry string `json:"issuingCountry"`
}

// CryptoDetails is the metadata carried by crypto currencies.
type CryptoDetails struct {
	Algorithm string  `json:"algorithm"`
	MarketCap float64 `json:"marketCap"`
}

// Currency represents a supported currency in the domain.
// Exactly one of Fiat or Crypto is set, matching Kind.
type Currency struct {
	CurrencyCode string         `json:"currencyCode"` // e.g., "USD"
	Name         string         `json:"name"`         // e.g., "US Dollar"
	Kind         CurrencyKind   `json:"kind"`
	Fiat         *FiatDetails   `json:"fiat,omitempty"`
	Crypto       *CryptoDetails `json:"crypto,omitempty"`
}

// NewFiatCurrency builds a validated fiat currency.
func NewFiatCurrency(code, name, issuingCountry string) (Currency, error) {
	code, err := validateCurrency(code, name)
	if err != nil {
		return Currency{}, err
	}
	return Currency{
		CurrencyCode: code,
		Name:         strings.TrimSpace(name),
		Kind:         CurrencyKindFiat,
		Fiat:         &FiatDetails{IssuingCountry: issuingCountry},
	}, nil
}

// NewCryptoCurrency builds a validated crypto currency.
func NewCryptoCurrency(code, name, algorithm string, marketCap float64) (Currency, error) {
	code, err := validateCurrency(code, name)
	if err != nil {
		return Currency{}, err
	}
	if marketCap < 0 {
		return Currency{}, apperrors.NewValidationError("market cap for " + code + " must not be negative")
	}
	return Currency{
		CurrencyCode: code,
		Name:         strings.TrimSpace(name),
		Kind:         CurrencyKindCrypto,
		Crypto:       &CryptoDetails{Algorithm: algorithm, MarketCap: marketCap},
	}, nil
}

// DisplayInfo renders a one-line description of the currency.
func (c Currency) DisplayInfo() string {
	switch c.Kind {
	case CurrencyKindFiat:
		country := ""
		if c.Fiat != nil {
			country = c.Fiat.IssuingCountry
		}
		return fmt.Sprintf("[FIAT] %s — %s (Issuing: %s)", c.CurrencyCode, c.Name, country)
	case CurrencyKindCrypto:
		var algo string
		var mcap float64
		if c.Crypto != nil {
			algo, mcap = c.Crypto.Algorithm, c.Crypto.MarketCap
		}
		return fmt.Sprintf("[CRYPTO] %s — %s (Algo: %s, MCAP: %.2e)", c.CurrencyCode, c.Name, algo, mcap)
	default:
		return fmt.Sprintf("%s — %s", c.CurrencyCode, c.Name)
	}
}

// IsCrypto reports whether c is a crypto currency.
func (c Currency) IsCrypto() bool { return c.Kind == CurrencyKindCrypto }

// NormalizeCode trims and upper-cases a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsValidCode reports whether code (after normalization) is 2 to 5 letters.
func IsValidCode(code string) bool {
	code = NormalizeCode(code)
	if len(code) < 2 || len(code) > 5 {
		return false
	}
	for _, r := range code {
		if !unicode.IsLetter(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func validateCurrency(code, name string) (string, error) {
	if !IsValidCode(code) {
		return "", apperrors.NewValidationError(fmt.Sprintf("currency code %q must be 2-5 letters", code))
	}
	if strings.TrimSpace(name) == "" {
		return "", apperrors.NewValidationError("currency name must not be empty")
	}
	return NormalizeCode(code), nil
}
