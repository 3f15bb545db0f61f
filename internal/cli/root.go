// Package cli is the valutatrade command line: one cobra command per user action,
// all sharing the services wired by newApp.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/SscSPs/valutatrade_hub/internal/platform/config"
	"github.com/spf13/cobra"
)

// Option customises the root command.
type Option func(*rootOptions)

type rootOptions struct {
	loadConfig func() (*config.Config, error)
}

// WithConfigLoader replaces config.LoadConfig.
func WithConfigLoader(load func() (*config.Config, error)) Option {
	return func(o *rootOptions) { o.loadConfig = load }
}

type runtime struct {
	opts rootOptions
}

// open wires an App for cmd. The caller must Close it.
func (rt *runtime) open(cmd *cobra.Command, console io.Writer) (*App, error) {
	cfg, err := rt.opts.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newApp(cmd.Context(), cfg, console)
}

// NewRootCommand builds the valutatrade command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	o := rootOptions{loadConfig: config.LoadConfig}
	for _, opt := range opts {
		opt(&o)
	}
	rt := &runtime{opts: o}

	root := &cobra.Command{
		Use:   "valutatrade",
		Short: "Simulated fiat and crypto trading with live exchange rates",
		Long: `ValutaTrade Hub keeps a portfolio of currency wallets per user and trades
them against the base currency at rates pulled from CoinGecko and ExchangeRate-API.

Start with 'register' and 'login', then 'update-rates' before trading.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRegisterCmd(rt),
		newLoginCmd(rt),
		newLogoutCmd(rt),
		newShowPortfolioCmd(rt),
		newOpenWalletCmd(rt),
		newBuyCmd(rt),
		newSellCmd(rt),
		newGetRateCmd(rt),
		newShowRatesCmd(rt),
		newUpdateRatesCmd(rt),
		newListCurrenciesCmd(rt),
		newScheduleCmd(rt),
		newServeCmd(rt),
	)
	return root
}

// Execute runs the command line with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...Option) int {
	root := NewRootCommand(opts...)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, FriendlyError(err))
		return 1
	}
	return 0
}
