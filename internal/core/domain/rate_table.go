package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/shopspring/decimal"
)

// RateResolver resolves a directed rate between two currency codes.
type RateResolver interface {
	Resolve(from, to string) (ExchangeRate, error)
}

// RateTable resolves directed rates over one snapshot. Lookups are direct or
// single-step inverse only; the table never chains through a third currency.
type RateTable struct {
	registry *CurrencyRegistry
	snapshot *RateSnapshot
	now      func() time.Time
}

var _ RateResolver = (*RateTable)(nil)

// NewRateTable builds a table over snapshot. now stamps identity rates and may be nil.
func NewRateTable(registry *CurrencyRegistry, snapshot *RateSnapshot, now func() time.Time) *RateTable {
	if now == nil {
		now = time.Now
	}
	if snapshot == nil {
		snapshot = NewRateSnapshot()
	}
	return &RateTable{registry: registry, snapshot: snapshot, now: now}
}

// Snapshot returns the snapshot the table reads from.
func (t *RateTable) Snapshot() *RateSnapshot { return t.snapshot }

// Resolve returns the rate for one unit of from expressed in to.
func (t *RateTable) Resolve(from, to string) (ExchangeRate, error) {
	fromCur, err := t.registry.Get(from)
	if err != nil {
		return ExchangeRate{}, err
	}
	toCur, err := t.registry.Get(to)
	if err != nil {
		return ExchangeRate{}, err
	}
	from, to = fromCur.CurrencyCode, toCur.CurrencyCode

	if from == to {
		return ExchangeRate{
			FromCurrencyCode: from,
			ToCurrencyCode:   to,
			Rate:             decimal.NewFromInt(1),
			ObservedAt:       t.now().UTC(),
			Source:           IdentitySource,
		}, nil
	}

	key := NewPairKey(from, to)
	if direct, ok := t.snapshot.Lookup(key); ok {
		if !direct.Rate.IsPositive() {
			return ExchangeRate{}, corruptRate(key, direct.Rate)
		}
		return direct, nil
	}

	if inverse, ok := t.snapshot.Lookup(key.Reversed()); ok {
		if !inverse.Rate.IsPositive() {
			return ExchangeRate{}, corruptRate(key.Reversed(), inverse.Rate)
		}
		return ExchangeRate{
			FromCurrencyCode: from,
			ToCurrencyCode:   to,
			Rate:             decimal.NewFromInt(1).Div(inverse.Rate),
			ObservedAt:       inverse.ObservedAt,
			Source:           inverse.Source,
		}, nil
	}

	return ExchangeRate{}, apperrors.NewRateUnavailable(from, to)
}

func corruptRate(key PairKey, rate decimal.Decimal) error {
	return fmt.Errorf("%w: %s has non-positive rate %s", apperrors.ErrCorruptRate, key, rate.String())
}
