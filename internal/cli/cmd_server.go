package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/core/services"
	"github.com/SscSPs/valutatrade_hub/internal/handlers"
	"github.com/SscSPs/valutatrade_hub/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 8 * time.Second

func newScheduleCmd(rt *runtime) *cobra.Command {
	var interval time.Duration
	var once bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Refresh rates periodically until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.open(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()

			scheduler := app.newScheduler(interval)
			if once {
				report, err := scheduler.RunOnce(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Total rates updated: %d. Last refresh: %s\n", report.Saved, formatTime(report.RefreshedAt))
				return nil
			}

			if err := scheduler.Start(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updating rates every %s. Press Ctrl+C to stop.\n", scheduler.Interval())
			<-cmd.Context().Done()
			scheduler.Stop()
			fmt.Fprintln(cmd.OutOrStdout(), "Scheduler stopped")
			return nil
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", 0, "time between refreshes (default: UPDATE_INTERVAL)")
	cmd.Flags().BoolVar(&once, "once", false, "run a single refresh and exit")
	return cmd
}

func (a *App) newScheduler(interval time.Duration) *services.Scheduler {
	if interval <= 0 {
		interval = a.Config.UpdateInterval
	}
	runner := services.UpdateRunnerFunc(a.Services.ExchangeRate.RefreshRates)
	return services.NewScheduler(runner, interval, a.Config.UpdateRetryDelay, a.Logger)
}

func newServeCmd(rt *runtime) *cobra.Command {
	var port string
	var withScheduler bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rt.open(cmd, os.Stderr)
			if err != nil {
				return err
			}
			defer app.Close()

			if port == "" {
				port = app.Config.Port
			}
			router, err := newRouter(app)
			if err != nil {
				return err
			}

			if withScheduler {
				scheduler := app.newScheduler(0)
				if err := scheduler.Start(cmd.Context()); err != nil {
					return err
				}
				defer scheduler.Stop()
			}

			return serveUntilDone(cmd.Context(), app.Logger, &http.Server{
				Addr:              ":" + port,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			})
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (default: PORT)")
	cmd.Flags().BoolVar(&withScheduler, "with-scheduler", false, "also refresh rates every UPDATE_INTERVAL")
	return cmd
}

// newRouter builds the gin engine with the global middleware and every route.
func newRouter(app *App) (*gin.Engine, error) {
	if app.Config.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(app.Logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     app.Config.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.PosthogMiddleware(app.Analytics))

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, app.Config, app.Services)
	return r, nil
}

func serveUntilDone(ctx context.Context, logger *slog.Logger, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutdown requested")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
