package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// Trading and rate errors.
var (
	ErrCurrencyNotFound     = errors.New("currency not found")
	ErrInvalidAmount        = errors.New("amount must be a positive number")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrRateUnavailable      = errors.New("exchange rate unavailable")
	ErrCorruptRate          = errors.New("corrupt exchange rate data")
	ErrInvalidOperation     = errors.New("invalid operation")
	ErrDuplicateWallet      = errors.New("wallet already exists")
	ErrPersistence          = errors.New("persistence failure")
	ErrConsistency          = errors.New("ledger consistency failure")
	ErrTradeRateUnavailable = errors.New("rate unavailable for this pair, try later")
	ErrAPIUnavailable       = errors.New("external rate API unavailable")
)

// Kind returns a short, stable name for the error family err belongs to.
// It is used for action logs and analytics, never for control flow.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTradeRateUnavailable):
		return "TradeRateUnavailable"
	case errors.Is(err, ErrCurrencyNotFound):
		return "CurrencyNotFound"
	case errors.Is(err, ErrInvalidAmount):
		return "InvalidAmount"
	case errors.Is(err, ErrInsufficientFunds):
		return "InsufficientFunds"
	case errors.Is(err, ErrRateUnavailable):
		return "RateUnavailable"
	case errors.Is(err, ErrCorruptRate):
		return "CorruptRate"
	case errors.Is(err, ErrInvalidOperation):
		return "InvalidOperation"
	case errors.Is(err, ErrDuplicateWallet):
		return "DuplicateWallet"
	case errors.Is(err, ErrConsistency):
		return "Consistency"
	case errors.Is(err, ErrPersistence):
		return "PersistenceFailure"
	case errors.Is(err, ErrAPIUnavailable):
		return "APIUnavailable"
	case errors.Is(err, ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, ErrDuplicate):
		return "Duplicate"
	case errors.Is(err, ErrValidation):
		return "Validation"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	default:
		return "Internal"
	}
}
