package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	insufficient := NewInsufficientFunds("USD", decimal.NewFromInt(100), decimal.NewFromInt(60000))
	wrapped := fmt.Errorf("buy failed: %w", insufficient)

	assert.ErrorIs(t, wrapped, ErrInsufficientFunds)
	var ife *InsufficientFundsError
	assert.True(t, errors.As(wrapped, &ife))
	assert.Equal(t, "USD", ife.Code)
	assert.True(t, ife.Required.Equal(decimal.NewFromInt(60000)))
	assert.Equal(t, "insufficient funds: available 100 USD, required 60000 USD", insufficient.Error())

	assert.ErrorIs(t, NewCurrencyNotFound("XRP"), ErrCurrencyNotFound)
	assert.ErrorIs(t, NewRateUnavailable("BTC", "USD"), ErrRateUnavailable)
	assert.NotErrorIs(t, NewRateUnavailable("BTC", "USD"), ErrCurrencyNotFound)

	apiErr := &APIRequestError{Source: "CoinGecko", Reason: "timeout", Err: errors.New("deadline")}
	assert.ErrorIs(t, apiErr, ErrAPIUnavailable)
	assert.Contains(t, apiErr.Error(), "CoinGecko")
}

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"currency", NewCurrencyNotFound("XRP"), "CurrencyNotFound"},
		{"funds", NewInsufficientFunds("USD", decimal.Zero, decimal.NewFromInt(1)), "InsufficientFunds"},
		{"trade rate wins over rate", fmt.Errorf("%w: %w", ErrTradeRateUnavailable, NewRateUnavailable("A", "B")), "TradeRateUnavailable"},
		{"rate", NewRateUnavailable("A", "B"), "RateUnavailable"},
		{"validation", NewValidationError("bad"), "Validation"},
		{"unknown", errors.New("boom"), "Internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}
