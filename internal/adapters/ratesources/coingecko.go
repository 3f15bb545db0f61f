package ratesources

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portssvc "github.com/SscSPs/valutatrade_hub/internal/core/ports/services"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const coinGeckoLabel = "CoinGecko"

// DefaultCryptoIDs maps tickers to CoinGecko coin ids.
var DefaultCryptoIDs = map[string]string{
	"BTC": "bitcoin",
	"ETH": "ethereum",
	"SOL": "solana",
}

// CoinGecko fetches crypto prices quoted in the base currency.
type CoinGecko struct {
	client *resty.Client
	base   string
	ids    map[string]string
	now    func() time.Time
}

var _ portssvc.RateSource = (*CoinGecko)(nil)

// NewCoinGecko prices tickers in base. Tickers without a known coin id are skipped.
func NewCoinGecko(opts ClientOptions, base string, tickers []string) *CoinGecko {
	ids := make(map[string]string, len(tickers))
	for _, t := range tickers {
		t = domain.NormalizeCode(t)
		if id, ok := DefaultCryptoIDs[t]; ok {
			ids[t] = id
		} else {
			slog.Warn("No CoinGecko id for ticker, skipping", slog.String("ticker", t))
		}
	}
	return &CoinGecko{
		client: newRestyClient(opts),
		base:   domain.NormalizeCode(base),
		ids:    ids,
		now:    time.Now,
	}
}

func (c *CoinGecko) Name() string { return "coingecko" }

// FetchRates returns one TICKER_BASE rate per priced ticker.
func (c *CoinGecko) FetchRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	if len(c.ids) == 0 {
		return nil, nil
	}
	idList := make([]string, 0, len(c.ids))
	for _, id := range c.ids {
		idList = append(idList, id)
	}
	vs := strings.ToLower(c.base)

	var body map[string]map[string]decimal.Decimal
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":           strings.Join(idList, ","),
			"vs_currencies": vs,
		}).
		SetResult(&body).
		Get("/simple/price")
	if err != nil {
		return nil, requestError(coinGeckoLabel, err)
	}
	if resp.IsError() {
		return nil, statusError(coinGeckoLabel, resp, "")
	}

	observed := c.now().UTC()
	rates := make([]domain.ExchangeRate, 0, len(c.ids))
	for ticker, id := range c.ids {
		price, ok := body[id][vs]
		if !ok || !price.IsPositive() {
			continue
		}
		rates = append(rates, domain.ExchangeRate{
			FromCurrencyCode: ticker,
			ToCurrencyCode:   c.base,
			Rate:             price,
			ObservedAt:       observed,
			Source:           coinGeckoLabel,
		})
	}
	return rates, nil
}
