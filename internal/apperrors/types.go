package apperrors

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CurrencyNotFoundError reports a code that is not in the currency registry.
type CurrencyNotFoundError struct {
	Code string
}

func (e *CurrencyNotFoundError) Error() string {
	return fmt.Sprintf("unknown currency '%s'", e.Code)
}

func (e *CurrencyNotFoundError) Is(target error) bool { return target == ErrCurrencyNotFound }

// InsufficientFundsError carries the balance that was available and the amount the
// operation needed, both in Code.
type InsufficientFundsError struct {
	Code      string
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available %s %s, required %s %s",
		e.Available.String(), e.Code, e.Required.String(), e.Code)
}

func (e *InsufficientFundsError) Is(target error) bool { return target == ErrInsufficientFunds }

// RateUnavailableError reports a pair that has neither a direct nor an inverse entry
// in the current rate snapshot. It is retryable once the next refresh lands.
type RateUnavailableError struct {
	From string
	To   string
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("exchange rate %s_%s unavailable", e.From, e.To)
}

func (e *RateUnavailableError) Is(target error) bool { return target == ErrRateUnavailable }

// Pair returns the FROM_TO key the lookup failed for.
func (e *RateUnavailableError) Pair() string { return e.From + "_" + e.To }

// APIRequestError wraps a failed call to an external rate source.
type APIRequestError struct {
	Source string
	Reason string
	Err    error
}

func (e *APIRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("external API %s failed: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("external API %s failed: %s", e.Source, e.Reason)
}

func (e *APIRequestError) Is(target error) bool { return target == ErrAPIUnavailable }

func (e *APIRequestError) Unwrap() error { return e.Err }

// NewCurrencyNotFound returns a *CurrencyNotFoundError for code.
func NewCurrencyNotFound(code string) error {
	return &CurrencyNotFoundError{Code: code}
}

// NewInsufficientFunds returns a *InsufficientFundsError.
func NewInsufficientFunds(code string, available, required decimal.Decimal) error {
	return &InsufficientFundsError{Code: code, Available: available, Required: required}
}

// NewRateUnavailable returns a *RateUnavailableError for the directed pair.
func NewRateUnavailable(from, to string) error {
	return &RateUnavailableError{From: from, To: to}
}

// NewValidationError wraps msg in ErrValidation.
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// NewNotFoundError wraps msg in ErrNotFound.
func NewNotFoundError(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}
