package cli

import (
	"fmt"

	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	"github.com/SscSPs/valutatrade_hub/internal/utils"
	"github.com/spf13/cobra"
)

func newShowPortfolioCmd(rt *runtime) *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "show-portfolio",
		Short: "Show every wallet valued in the base currency",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.open(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			sess, err := app.currentSession(cmd)
			if err != nil {
				return err
			}
			valuation, err := app.Services.Portfolio.GetValuation(cmd.Context(), sess.UserID, base)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTitle(out, "Portfolio of '%s' (base: %s)", sess.Username, valuation.BaseCurrency)
			if len(valuation.Wallets) == 0 {
				fmt.Fprintln(out, "No wallets yet.")
				return nil
			}

			rows := make([][]string, 0, len(valuation.Wallets))
			unpriced := 0
			for _, w := range valuation.Wallets {
				value, rate := "n/a", "n/a"
				if w.Priced {
					value = utils.FormatMoney(w.Value, valuation.BaseCurrency)
					rate = w.Rate.String()
				} else {
					unpriced++
				}
				rows = append(rows, []string{
					w.CurrencyCode,
					utils.FormatWithCurrencyPrecision(w.Balance, w.CurrencyCode),
					rate,
					value,
				})
			}
			renderTable(out, []string{"Currency", "Balance", "Rate", "Value (" + valuation.BaseCurrency + ")"}, rows)
			fmt.Fprintf(out, "TOTAL: %s\n", utils.FormatMoney(valuation.Total, valuation.BaseCurrency))
			if unpriced > 0 {
				printWarning(out, "%d wallet(s) have no rate to %s and count as zero. Run 'update-rates'.", unpriced, valuation.BaseCurrency)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "valuation currency (default: configured base currency)")
	return cmd
}

func newOpenWalletCmd(rt *runtime) *cobra.Command {
	var currency string

	cmd := &cobra.Command{
		Use:   "open-wallet",
		Short: "Open an empty wallet for a supported currency",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.open(cmd, nil)
			if err != nil {
				return err
			}
			defer app.Close()

			sess, err := app.currentSession(cmd)
			if err != nil {
				return err
			}
			portfolio, err := app.Services.Portfolio.OpenWallet(cmd.Context(), sess.UserID, currency)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wallet %s opened. You now hold %d wallet(s).\n",
				domain.NormalizeCode(currency), len(portfolio.Wallets()))
			return nil
		},
	}
	cmd.Flags().StringVar(&currency, "currency", "", "currency code, e.g. ETH")
	_ = cmd.MarkFlagRequired("currency")
	return cmd
}
