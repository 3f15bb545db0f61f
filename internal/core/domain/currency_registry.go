package domain

import (
	"sort"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
)

// CurrencyRegistry is a read-only set of supported currencies keyed by code.
// It is safe for concurrent use because it is never mutated after construction.
type CurrencyRegistry struct {
	currencies map[string]Currency
	codes      []string
}

// NewCurrencyRegistry builds a registry from the given currencies. A later entry
// with the same code replaces an earlier one.
func NewCurrencyRegistry(currencies ...Currency) *CurrencyRegistry {
	r := &CurrencyRegistry{currencies: make(map[string]Currency, len(currencies))}
	for _, c := range currencies {
		r.currencies[NormalizeCode(c.CurrencyCode)] = c
	}
	r.codes = make([]string, 0, len(r.currencies))
	for code := range r.currencies {
		r.codes = append(r.codes, code)
	}
	sort.Strings(r.codes)
	return r
}

// DefaultCurrencyRegistry returns the currencies the hub trades out of the box.
func DefaultCurrencyRegistry() *CurrencyRegistry {
	return NewCurrencyRegistry(
		mustFiat("USD", "US Dollar", "United States"),
		mustFiat("EUR", "Euro", "Eurozone"),
		mustFiat("GBP", "British Pound", "United Kingdom"),
		mustFiat("RUB", "Russian Ruble", "Russia"),
		mustCrypto("BTC", "Bitcoin", "SHA-256", 1.12e12),
		mustCrypto("ETH", "Ethereum", "Ethash", 3.5e11),
		mustCrypto("SOL", "Solana", "Proof of History", 6.5e10),
	)
}

// Get looks a currency up case-insensitively.
func (r *CurrencyRegistry) Get(code string) (Currency, error) {
	c, ok := r.currencies[NormalizeCode(code)]
	if !ok {
		return Currency{}, apperrors.NewCurrencyNotFound(NormalizeCode(code))
	}
	return c, nil
}

// Has reports whether code is registered.
func (r *CurrencyRegistry) Has(code string) bool {
	_, ok := r.currencies[NormalizeCode(code)]
	return ok
}

// List returns all currencies ordered by code.
func (r *CurrencyRegistry) List() []Currency {
	out := make([]Currency, 0, len(r.codes))
	for _, code := range r.codes {
		out = append(out, r.currencies[code])
	}
	return out
}

// Codes returns the registered codes in sorted order.
func (r *CurrencyRegistry) Codes() []string {
	return append([]string(nil), r.codes...)
}

func mustFiat(code, name, country string) Currency {
	c, err := NewFiatCurrency(code, name, country)
	if err != nil {
		panic(err)
	}
	return c
}

func mustCrypto(code, name, algo string, mcap float64) Currency {
	c, err := NewCryptoCurrency(code, name, algo, mcap)
	if err != nil {
		panic(err)
	}
	return c
}
