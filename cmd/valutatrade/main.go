package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/SscSPs/valutatrade_hub/internal/cli"
)

// @title ValutaTrade Hub API
// @version 1.0
// @description Simulated currency trading: portfolios, trades and exchange rates.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
