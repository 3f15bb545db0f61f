package ratesources

import (
	"context"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portssvc "github.com/SscSPs/valutatrade_hub/internal/core/ports/services"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const exchangeRateLabel = "ExchangeRate-API"

type exchangeRateResponse struct {
	Result          string                     `json:"result"`
	ErrorType       string                     `json:"error-type"`
	BaseCode        string                     `json:"base_code"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

// ExchangeRateAPI fetches fiat rates. The API quotes BASE→FIAT; rates are
// stored inverted as FIAT_BASE so they read like the crypto quotes.
type ExchangeRateAPI struct {
	client *resty.Client
	apiKey string
	base   string
	fiats  []string
	now    func() time.Time
}

var _ portssvc.RateSource = (*ExchangeRateAPI)(nil)

func NewExchangeRateAPI(opts ClientOptions, apiKey, base string, fiats []string) *ExchangeRateAPI {
	base = domain.NormalizeCode(base)
	codes := make([]string, 0, len(fiats))
	for _, f := range fiats {
		if f = domain.NormalizeCode(f); f != "" && f != base {
			codes = append(codes, f)
		}
	}
	return &ExchangeRateAPI{
		client: newRestyClient(opts),
		apiKey: apiKey,
		base:   base,
		fiats:  codes,
		now:    time.Now,
	}
}

func (e *ExchangeRateAPI) Name() string { return "exchangerate" }

func (e *ExchangeRateAPI) FetchRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	if e.apiKey == "" {
		return nil, &apperrors.APIRequestError{Source: exchangeRateLabel, Reason: "API key is not configured"}
	}

	var body exchangeRateResponse
	resp, err := e.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"key": e.apiKey, "base": e.base}).
		SetResult(&body).
		SetError(&body).
		Get("/{key}/latest/{base}")
	if err != nil {
		return nil, requestError(exchangeRateLabel, err)
	}
	if resp.IsError() || body.Result != "success" {
		detail := body.ErrorType
		if detail == "" {
			detail = "unknown error"
		}
		if !resp.IsError() {
			return nil, &apperrors.APIRequestError{Source: exchangeRateLabel, Reason: detail}
		}
		return nil, statusError(exchangeRateLabel, resp, detail)
	}

	observed := e.now().UTC()
	one := decimal.NewFromInt(1)
	rates := make([]domain.ExchangeRate, 0, len(e.fiats))
	for _, code := range e.fiats {
		quoted, ok := body.ConversionRates[code]
		if !ok || !quoted.IsPositive() {
			continue
		}
		rates = append(rates, domain.ExchangeRate{
			FromCurrencyCode: code,
			ToCurrencyCode:   e.base,
			Rate:             one.Div(quoted),
			ObservedAt:       observed,
			Source:           exchangeRateLabel,
		})
	}
	return rates, nil
}
