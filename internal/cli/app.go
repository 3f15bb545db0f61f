package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/SscSPs/valutatrade_hub/internal/adapters/ratesources"
	"github.com/SscSPs/valutatrade_hub/internal/core/domain"
	portsrepo "github.com/SscSPs/valutatrade_hub/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/valutatrade_hub/internal/core/ports/services"
	"github.com/SscSPs/valutatrade_hub/internal/core/services"
	"github.com/SscSPs/valutatrade_hub/internal/platform/config"
	"github.com/SscSPs/valutatrade_hub/internal/platform/logging"
	"github.com/SscSPs/valutatrade_hub/internal/repositories/database/jsonfile"
	"github.com/SscSPs/valutatrade_hub/internal/repositories/database/pgsql"
	"github.com/SscSPs/valutatrade_hub/internal/utils"
	"github.com/SscSPs/valutatrade_hub/pkg/database"
)

// App is everything one command invocation needs, wired from the configuration.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Services  *portssvc.ServiceContainer
	Analytics *utils.PosthogClientWrapper
	Sessions  *SessionStore

	closers []func()
}

// newApp wires logging, storage, rate sources and services. console receives log
// lines in addition to the log file and may be nil.
func newApp(ctx context.Context, cfg *config.Config, console io.Writer) (*App, error) {
	logger, logCloser, err := logging.New(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		Console:    console,
	})
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	app := &App{Config: cfg, Logger: logger, Sessions: NewSessionStore(cfg.SessionPath())}
	app.closers = append(app.closers, func() { _ = logCloser.Close() })

	repos, err := app.openRepositories(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Analytics = utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	app.closers = append(app.closers, app.Analytics.Close)

	recorder := services.MultiOutcomeRecorder{
		services.NewSlogOutcomeRecorder(logger),
		services.NewPosthogOutcomeRecorder(app.Analytics),
	}

	app.Services = services.NewServiceContainer(cfg, repos, services.ContainerDeps{
		Registry: domain.DefaultCurrencyRegistry(),
		Sources:  buildRateSources(cfg),
		Recorder: recorder,
	})
	return app, nil
}

func (a *App) openRepositories(ctx context.Context) (portsrepo.RepositoryProvider, error) {
	switch a.Config.StorageDriver {
	case config.StoragePostgres:
		pool, err := database.NewPgxPool(ctx, a.Config.DatabaseURL, a.Logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		a.closers = append(a.closers, func() { database.ClosePgxPool(pool, a.Logger) })

		if a.Config.EnableDBMigrations {
			a.Logger.Info("Running database migrations...")
			if err := pgsql.RunMigrations(a.Config.DatabaseURL, a.Logger); err != nil {
				return portsrepo.RepositoryProvider{}, err
			}
		}
		return pgsql.NewRepositoryProvider(pool), nil
	default:
		return jsonfile.NewRepositoryProvider(jsonfile.Paths{
			Users:        a.Config.UsersPath(),
			Portfolios:   a.Config.PortfoliosPath(),
			Rates:        a.Config.RatesPath(),
			RatesHistory: a.Config.RatesHistoryPath(),
		}), nil
	}
}

// buildRateSources returns CoinGecko for the configured crypto tickers and
// ExchangeRate-API for the configured fiat codes.
func buildRateSources(cfg *config.Config) []portssvc.RateSource {
	var sources []portssvc.RateSource
	if len(cfg.CryptoCurrencies) > 0 {
		sources = append(sources, ratesources.NewCoinGecko(ratesources.ClientOptions{
			BaseURL:    cfg.CoinGeckoURL,
			Timeout:    cfg.APITimeout,
			RetryCount: cfg.APIRetryCount,
		}, cfg.BaseCurrency, cfg.CryptoCurrencies))
	}
	if len(cfg.FiatCurrencies) > 0 {
		sources = append(sources, ratesources.NewExchangeRateAPI(ratesources.ClientOptions{
			BaseURL:    cfg.ExchangeRateURL,
			Timeout:    cfg.APITimeout,
			RetryCount: cfg.APIRetryCount,
		}, strings.TrimSpace(cfg.ExchangeRateKey), cfg.BaseCurrency, cfg.FiatCurrencies))
	}
	return sources
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
