package cli

import (
	"fmt"
	"strings"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newGetRateCmd(rt *runtime) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "get-rate",
		Short: "Show the current rate between two currencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.open(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			quote, err := app.Services.ExchangeRate.GetExchangeRate(cmd.Context(), from, to)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Rate %s→%s: %s (updated %s, source %s)\n",
				quote.FromCurrencyCode, quote.ToCurrencyCode, quote.Rate.String(),
				formatTime(quote.ObservedAt), sourceOrDash(quote.Source))
			if !quote.Rate.IsZero() {
				fmt.Fprintf(out, "Inverse %s→%s: %s\n",
					quote.ToCurrencyCode, quote.FromCurrencyCode, decimal.NewFromInt(1).Div(quote.Rate).String())
			}
			if quote.Stale {
				printWarning(out, "This rate is older than %s. Run 'update-rates' for fresh data.", app.Config.RatesTTL)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "source currency code")
	cmd.Flags().StringVar(&to, "to", "", "target currency code")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newShowRatesCmd(rt *runtime) *cobra.Command {
	var currency string
	var top int

	cmd := &cobra.Command{
		Use:   "show-rates",
		Short: "List the cached exchange rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.open(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			listing, err := app.Services.ExchangeRate.ListExchangeRates(cmd.Context(), domain.RateFilter{Currency: currency, Top: top})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(listing.Rates) == 0 {
				if currency != "" {
					fmt.Fprintf(out, "No cached rates for '%s'.\n", strings.ToUpper(currency))
				} else {
					fmt.Fprintln(out, "Local rates cache is empty. Run 'update-rates' to fetch data.")
				}
				return nil
			}

			printTitle(out, "Rates from cache (last refresh: %s)", formatTime(listing.LastRefresh))
			rows := make([][]string, 0, len(listing.Rates))
			for _, r := range listing.Rates {
				rows = append(rows, []string{string(r.Pair()), r.Rate.String(), formatTime(r.ObservedAt), sourceOrDash(r.Source)})
			}
			renderTable(out, []string{"Pair", "Rate", "Updated", "Source"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&currency, "currency", "", "only pairs involving this currency")
	cmd.Flags().IntVar(&top, "top", 0, "only the N highest rates")
	return cmd
}

func newUpdateRatesCmd(rt *runtime) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "update-rates",
		Short: "Fetch fresh rates from the external sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.open(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Starting rates update...")
			report, err := app.Services.ExchangeRate.RefreshRates(cmd.Context(), source)
			if err != nil {
				return err
			}
			for _, r := range report.Results {
				if r.Err != nil {
					printWarning(out, "Failed to fetch from %s: %s", r.Source, FriendlyError(r.Err))
					continue
				}
				fmt.Fprintf(out, "Fetching from %s... OK (%d rates)\n", r.Source, r.Fetched)
			}
			if len(report.Failed()) > 0 {
				fmt.Fprintf(out, "Update completed with errors. Check %s for details.\n", app.Config.LogFile)
			} else {
				fmt.Fprintln(out, "Update successful.")
			}
			fmt.Fprintf(out, "Total rates updated: %d. Last refresh: %s\n", report.Saved, formatTime(report.RefreshedAt))
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "only this source (coingecko or exchangerate)")
	return cmd
}

func newListCurrenciesCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list-currencies",
		Short: "List the supported currencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.open(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			currencies, err := app.Services.Currency.ListCurrencies(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range currencies {
				fmt.Fprintln(cmd.OutOrStdout(), c.DisplayInfo())
			}
			return nil
		},
	}
}

func sourceOrDash(source string) string {
	if source == "" {
		return "-"
	}
	return source
}
