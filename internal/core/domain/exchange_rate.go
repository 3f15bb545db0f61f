package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// IdentitySource marks the 1:1 rate returned for same-currency lookups.
const IdentitySource = "identity"

// PairKey identifies a directed currency pair as "FROM_TO".
type PairKey string

// NewPairKey builds the key for the directed pair from → to.
func NewPairKey(from, to string) PairKey {
	return PairKey(NormalizeCode(from) + "_" + NormalizeCode(to))
}

// Split returns the two codes of the pair.
func (k PairKey) Split() (from, to string, ok bool) {
	from, to, ok = strings.Cut(string(k), "_")
	if !ok || from == "" || to == "" {
		return "", "", false
	}
	return from, to, true
}

// Reversed returns the key of the opposite direction.
func (k PairKey) Reversed() PairKey {
	from, to, ok := k.Split()
	if !ok {
		return k
	}
	return NewPairKey(to, from)
}

// ExchangeRate is one directed rate: one unit of From is worth Rate units of To.
type ExchangeRate struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	ObservedAt       time.Time       `json:"observedAt"`
	Source           string          `json:"source"`
}

// Pair returns the key of the rate.
func (r ExchangeRate) Pair() PairKey {
	return NewPairKey(r.FromCurrencyCode, r.ToCurrencyCode)
}

// IsStale reports whether the rate is older than ttl at now. A zero ttl disables the check.
func (r ExchangeRate) IsStale(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(r.ObservedAt) > ttl
}

// RateQuote is a resolved rate plus whether it is older than the configured TTL.
type RateQuote struct {
	ExchangeRate
	Stale bool `json:"stale"`
}

// RateFilter narrows a rate listing. Top > 0 keeps the N highest rates.
type RateFilter struct {
	Currency string
	Top      int
}

// RateListing is the result of listing the current snapshot.
type RateListing struct {
	Rates       []ExchangeRate
	LastRefresh time.Time
}

// RateHistoryRecord is one appended entry of the rate history log.
type RateHistoryRecord struct {
	ID string
	ExchangeRate
}

// RateSnapshot is the last-known set of directed rates. It is a plain value:
// callers load a fresh one from storage for every resolution.
type RateSnapshot struct {
	Rates       map[PairKey]ExchangeRate
	LastRefresh time.Time
}

// NewRateSnapshot returns an empty snapshot.
func NewRateSnapshot() *RateSnapshot {
	return &RateSnapshot{Rates: make(map[PairKey]ExchangeRate)}
}

// Put stores rate under its pair, replacing any previous value.
func (s *RateSnapshot) Put(rate ExchangeRate) {
	if s.Rates == nil {
		s.Rates = make(map[PairKey]ExchangeRate)
	}
	rate.FromCurrencyCode = NormalizeCode(rate.FromCurrencyCode)
	rate.ToCurrencyCode = NormalizeCode(rate.ToCurrencyCode)
	s.Rates[rate.Pair()] = rate
}

// Merge stores all rates and stamps the snapshot with refreshedAt.
func (s *RateSnapshot) Merge(rates []ExchangeRate, refreshedAt time.Time) {
	for _, r := range rates {
		s.Put(r)
	}
	if refreshedAt.After(s.LastRefresh) {
		s.LastRefresh = refreshedAt
	}
}

// Lookup returns the stored rate for exactly key.
func (s *RateSnapshot) Lookup(key PairKey) (ExchangeRate, bool) {
	if s == nil {
		return ExchangeRate{}, false
	}
	r, ok := s.Rates[key]
	return r, ok
}

// Len returns the number of stored pairs.
func (s *RateSnapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Rates)
}

// List returns the stored rates ordered by pair key.
func (s *RateSnapshot) List() []ExchangeRate {
	if s == nil {
		return nil
	}
	out := make([]ExchangeRate, 0, len(s.Rates))
	for _, r := range s.Rates {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pair() < out[j].Pair() })
	return out
}

// Filter applies f to the snapshot. With a currency set only pairs that mention it
// remain. With Top > 0 the result is ordered by rate descending and truncated,
// otherwise it stays ordered by pair.
func (s *RateSnapshot) Filter(f RateFilter) []ExchangeRate {
	rates := s.List()
	if code := NormalizeCode(f.Currency); code != "" {
		kept := rates[:0]
		for _, r := range rates {
			if r.FromCurrencyCode == code || r.ToCurrencyCode == code {
				kept = append(kept, r)
			}
		}
		rates = kept
	}
	if f.Top > 0 {
		sort.SliceStable(rates, func(i, j int) bool { return rates[i].Rate.GreaterThan(rates[j].Rate) })
		if len(rates) > f.Top {
			rates = rates[:f.Top]
		}
	}
	return rates
}
