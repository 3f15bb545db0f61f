package mapping

import (
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	"github.com/SscSPs/valutatrade_hub/internal/models"
)

// ToModelRatePair converts a domain ExchangeRate to its snapshot entry.
func ToModelRatePair(d domain.ExchangeRate) models.RatePair {
	return models.RatePair{
		Rate:      d.Rate,
		UpdatedAt: models.NewTimestamp(d.ObservedAt),
		Source:    d.Source,
	}
}

// ToDomainExchangeRate converts a snapshot entry back to a domain ExchangeRate.
func ToDomainExchangeRate(key domain.PairKey, m models.RatePair) (domain.ExchangeRate, bool) {
	from, to, ok := key.Split()
	if !ok {
		return domain.ExchangeRate{}, false
	}
	return domain.ExchangeRate{
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             m.Rate,
		ObservedAt:       m.UpdatedAt.Time,
		Source:           m.Source,
	}, true
}

// ToModelRatesFile converts a snapshot to its stored form.
func ToModelRatesFile(s *domain.RateSnapshot) models.RatesFile {
	f := models.RatesFile{
		Pairs:       make(map[string]models.RatePair, s.Len()),
		LastRefresh: models.NewTimestamp(s.LastRefresh),
	}
	for _, r := range s.List() {
		f.Pairs[string(r.Pair())] = ToModelRatePair(r)
	}
	return f
}

// ToDomainRateSnapshot converts a stored snapshot, skipping malformed keys.
func ToDomainRateSnapshot(f models.RatesFile) *domain.RateSnapshot {
	s := domain.NewRateSnapshot()
	for key, pair := range f.Pairs {
		if r, ok := ToDomainExchangeRate(domain.PairKey(key), pair); ok {
			s.Put(r)
		}
	}
	s.LastRefresh = f.LastRefresh.Time
	return s
}

// ToModelHistoryRecord converts a history record to its stored form.
func ToModelHistoryRecord(d domain.RateHistoryRecord) models.ExchangeRateRecord {
	return models.ExchangeRateRecord{
		ID:           d.ID,
		FromCurrency: d.FromCurrencyCode,
		ToCurrency:   d.ToCurrencyCode,
		Rate:         d.Rate,
		Timestamp:    models.NewTimestamp(d.ObservedAt),
		Source:       d.Source,
	}
}
