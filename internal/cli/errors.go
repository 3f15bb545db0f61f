package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
)

// FriendlyError turns an application error into the line shown to the user.
func FriendlyError(err error) string {
	var (
		funds    *apperrors.InsufficientFundsError
		currency *apperrors.CurrencyNotFoundError
		rate     *apperrors.RateUnavailableError
		api      *apperrors.APIRequestError
	)

	switch {
	case errors.As(err, &funds):
		return fmt.Sprintf("Insufficient funds: available %s %s, required %s %s",
			funds.Available, funds.Code, funds.Required, funds.Code)
	case errors.As(err, &currency):
		return fmt.Sprintf("Unknown currency '%s'. Run 'list-currencies' to see the supported codes.", currency.Code)
	case errors.Is(err, apperrors.ErrTradeRateUnavailable):
		if errors.As(err, &rate) {
			return fmt.Sprintf("Rate %s is unavailable, try again after 'update-rates'.", rate.Pair())
		}
		return "Rate unavailable for this pair, try again after 'update-rates'."
	case errors.As(err, &rate):
		return fmt.Sprintf("Rate %s is unavailable. Run 'update-rates' to fetch fresh data.", rate.Pair())
	case errors.As(err, &api):
		return fmt.Sprintf("Could not reach %s (%s). Try again later.", api.Source, api.Reason)
	case errors.Is(err, apperrors.ErrAPIUnavailable):
		return "Rate sources are unavailable. Try again later."
	case errors.Is(err, apperrors.ErrCorruptRate),
		errors.Is(err, apperrors.ErrPersistence),
		errors.Is(err, apperrors.ErrConsistency):
		return "Internal error: " + err.Error() + ". See the log file for details."
	case errors.Is(err, apperrors.ErrUnauthorized),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInvalidOperation),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrDuplicateWallet),
		errors.Is(err, apperrors.ErrNotFound):
		return capitalize(err.Error())
	default:
		return "Error: " + err.Error()
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
