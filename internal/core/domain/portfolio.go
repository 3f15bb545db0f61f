package domain

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Wallet is a single currency balance inside a portfolio.
type Wallet struct {
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
}

// ValuationPolicy decides what happens to wallets whose rate cannot be resolved.
type ValuationPolicy int

const (
	// ValuationLenient counts unpriced wallets as zero.
	ValuationLenient ValuationPolicy = iota
	// ValuationStrict fails the whole valuation on the first unpriced wallet.
	ValuationStrict
)

// WalletValuation is one row of a valuation.
type WalletValuation struct {
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	Rate         decimal.Decimal `json:"rate"`
	Value        decimal.Decimal `json:"value"`
	Priced       bool            `json:"priced"`
}

// Valuation is a portfolio expressed in one base currency.
type Valuation struct {
	UserID       string            `json:"userID"`
	BaseCurrency string            `json:"baseCurrency"`
	Wallets      []WalletValuation `json:"wallets"`
	Total        decimal.Decimal   `json:"total"`
}

// Portfolio is the set of wallets owned by one user. Every balance is
// non-negative; each operation holds the portfolio's own lock so readers never
// observe a half-applied change.
type Portfolio struct {
	mu        sync.RWMutex
	userID    string
	wallets   map[string]decimal.Decimal
	updatedAt time.Time
}

// NewPortfolio returns an empty portfolio for userID.
func NewPortfolio(userID string) *Portfolio {
	return &Portfolio{userID: userID, wallets: make(map[string]decimal.Decimal)}
}

// RestorePortfolio rebuilds a portfolio from stored wallets, rejecting invalid rows.
func RestorePortfolio(userID string, wallets []Wallet, updatedAt time.Time) (*Portfolio, error) {
	p := NewPortfolio(userID)
	p.updatedAt = updatedAt
	for _, w := range wallets {
		code := NormalizeCode(w.CurrencyCode)
		if !IsValidCode(code) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("stored wallet has invalid currency code %q", w.CurrencyCode))
		}
		if w.Balance.IsNegative() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("stored wallet %s has negative balance %s", code, w.Balance))
		}
		p.wallets[code] = w.Balance
	}
	return p, nil
}

// UserID returns the owner of the portfolio.
func (p *Portfolio) UserID() string { return p.userID }

// UpdatedAt is the time of the last successful save, as reported by storage.
func (p *Portfolio) UpdatedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.updatedAt
}

// Touch sets the update time.
func (p *Portfolio) Touch(at time.Time) {
	p.mu.Lock()
	p.updatedAt = at
	p.mu.Unlock()
}

// HasWallet reports whether a wallet for code exists.
func (p *Portfolio) HasWallet(code string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.wallets[NormalizeCode(code)]
	return ok
}

// Wallet returns the wallet for code.
func (p *Portfolio) Wallet(code string) (Wallet, bool) {
	code = NormalizeCode(code)
	p.mu.RLock()
	defer p.mu.RUnlock()
	bal, ok := p.wallets[code]
	if !ok {
		return Wallet{}, false
	}
	return Wallet{CurrencyCode: code, Balance: bal}, true
}

// Balance returns the balance for code, zero when the wallet does not exist.
func (p *Portfolio) Balance(code string) decimal.Decimal {
	w, _ := p.Wallet(code)
	return w.Balance
}

// Wallets returns a copy of all wallets ordered by code.
func (p *Portfolio) Wallets() []Wallet {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]Wallet, 0, len(p.wallets))
	for code, bal := range p.wallets {
		out = append(out, Wallet{CurrencyCode: code, Balance: bal})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out
}

// OpenWallet adds a zero-balance wallet.
func (p *Portfolio) OpenWallet(code string) error {
	code = NormalizeCode(code)
	if !IsValidCode(code) {
		return apperrors.NewCurrencyNotFound(code)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.wallets[code]; ok {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateWallet, code)
	}
	p.wallets[code] = decimal.Zero
	return nil
}

// Deposit credits amount to the wallet for code, opening it at zero first if needed.
func (p *Portfolio) Deposit(code string, amount decimal.Decimal) error {
	code = NormalizeCode(code)
	if !amount.IsPositive() {
		return fmt.Errorf("%w: deposit of %s %s", apperrors.ErrInvalidAmount, amount, code)
	}
	if !IsValidCode(code) {
		return apperrors.NewCurrencyNotFound(code)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wallets[code] = p.wallets[code].Add(amount)
	return nil
}

// Withdraw debits amount from the wallet for code. On failure the balance is untouched.
func (p *Portfolio) Withdraw(code string, amount decimal.Decimal) error {
	code = NormalizeCode(code)
	if !amount.IsPositive() {
		return fmt.Errorf("%w: withdrawal of %s %s", apperrors.ErrInvalidAmount, amount, code)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	bal, ok := p.wallets[code]
	if !ok || bal.LessThan(amount) {
		return apperrors.NewInsufficientFunds(code, bal, amount)
	}
	p.wallets[code] = bal.Sub(amount)
	return nil
}

// Clone returns an independent copy.
func (p *Portfolio) Clone() *Portfolio {
	p.mu.RLock()
	defer p.mu.RUnlock()
	c := NewPortfolio(p.userID)
	c.updatedAt = p.updatedAt
	for code, bal := range p.wallets {
		c.wallets[code] = bal
	}
	return c
}

// Valuate converts every wallet into base using rates.
func (p *Portfolio) Valuate(base string, rates RateResolver, policy ValuationPolicy) (*Valuation, error) {
	base = NormalizeCode(base)
	wallets := p.Wallets()

	v := &Valuation{
		UserID:       p.userID,
		BaseCurrency: base,
		Wallets:      make([]WalletValuation, 0, len(wallets)),
		Total:        decimal.Zero,
	}
	for _, w := range wallets {
		row := WalletValuation{CurrencyCode: w.CurrencyCode, Balance: w.Balance, Value: decimal.Zero}
		rate, err := rates.Resolve(w.CurrencyCode, base)
		switch {
		case err == nil:
			row.Rate = rate.Rate
			row.Value = w.Balance.Mul(rate.Rate)
			row.Priced = true
			v.Total = v.Total.Add(row.Value)
		case policy == ValuationStrict:
			return nil, fmt.Errorf("valuing %s in %s: %w", w.CurrencyCode, base, err)
		case errors.Is(err, apperrors.ErrCorruptRate):
			return nil, err
		}
		v.Wallets = append(v.Wallets, row)
	}
	return v, nil
}

// TotalValue is the sum of all wallets expressed in base.
func (p *Portfolio) TotalValue(base string, rates RateResolver, policy ValuationPolicy) (decimal.Decimal, error) {
	v, err := p.Valuate(base, rates, policy)
	if err != nil {
		return decimal.Zero, err
	}
	return v.Total, nil
}
