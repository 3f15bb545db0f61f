package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	"github.com/SscSPs/valutatrade_hub/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type tradeFunc func(ctx context.Context, userID, currencyCode string, amount decimal.Decimal) (*domain.TradeResult, error)

func newBuyCmd(rt *runtime) *cobra.Command {
	return newTradeCmd(rt, "buy", "Buy a currency with the base currency", func(app *App) tradeFunc {
		return app.Services.Trade.Buy
	})
}

func newSellCmd(rt *runtime) *cobra.Command {
	return newTradeCmd(rt, "sell", "Sell a currency for the base currency", func(app *App) tradeFunc {
		return app.Services.Trade.Sell
	})
}

func newTradeCmd(rt *runtime, use, short string, pick func(*App) tradeFunc) *cobra.Command {
	var currency, amount string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := parseAmount(amount)
			if err != nil {
				return err
			}

			app, err := rt.open(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			sess, err := app.currentSession(cmd)
			if err != nil {
				return err
			}
			result, err := pick(app)(cmd.Context(), sess.UserID, currency, qty)
			if err != nil {
				return err
			}
			printTradeResult(cmd, result)
			return nil
		},
	}
	cmd.Flags().StringVar(&currency, "currency", "", "currency code, e.g. BTC")
	cmd.Flags().StringVar(&amount, "amount", "", "positive amount of the currency")
	_ = cmd.MarkFlagRequired("currency")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

// parseAmount accepts decimal notation with either '.' or ',' as separator.
func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: got '%s'", apperrors.ErrInvalidAmount, raw)
	}
	return d, nil
}

func printTradeResult(cmd *cobra.Command, r *domain.TradeResult) {
	out := cmd.OutOrStdout()
	verb, direction := "Bought", "paid"
	if r.Side == domain.TradeSideSell {
		verb, direction = "Sold", "received"
	}
	fmt.Fprintf(out, "%s %s %s at %s %s/%s, %s %s\n",
		verb,
		utils.FormatWithCurrencyPrecision(r.Amount, r.CurrencyCode), r.CurrencyCode,
		r.Rate.String(), r.BaseCurrency, r.CurrencyCode,
		direction, utils.FormatMoney(r.BaseAmount, r.BaseCurrency),
	)

	rows := make([][]string, 0, len(r.Balances))
	for _, w := range r.Balances {
		rows = append(rows, []string{w.CurrencyCode, utils.FormatWithCurrencyPrecision(w.Balance, w.CurrencyCode)})
	}
	renderTable(out, []string{"Currency", "Balance"}, rows)
}
