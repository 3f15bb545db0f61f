package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
	"github.com/SscSPs/valutatrade_hub/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CLITestSuite struct {
	suite.Suite
	cfg *config.Config
}

func (s *CLITestSuite) SetupTest() {
	dir := s.T().TempDir()
	s.cfg = &config.Config{
		StorageDriver:     config.StorageFile,
		DataDir:           filepath.Join(dir, "data"),
		UsersFile:         "users.json",
		PortfoliosFile:    "portfolios.json",
		RatesFile:         "rates.json",
		RatesHistoryFile:  "exchange_rates.json",
		BaseCurrency:      "USD",
		SignupBonus:       decimal.NewFromInt(1000),
		RatesTTL:          5 * time.Minute,
		UpdateInterval:    time.Minute,
		LogLevel:          "INFO",
		LogFile:           filepath.Join(dir, "logs", "valutatrade.log"),
		LogMaxSizeMB:      1,
		LogMaxBackups:     1,
		JWTSecret:         "test-secret-key-that-is-long-enough",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "valutatrade-test",
		SessionFile:       ".session",
	}

	observed := time.Now().UTC().Add(-time.Minute).Format(time.RFC3339)
	rates := fmt.Sprintf(`{
  "pairs": {
    "BTC_USD": {"rate": "60000", "updated_at": %q, "source": "CoinGecko"},
    "EUR_USD": {"rate": "1.25", "updated_at": %q, "source": "ExchangeRate-API"}
  },
  "last_refresh": %q
}`, observed, observed, observed)
	s.Require().NoError(os.MkdirAll(s.cfg.DataDir, 0o755))
	s.Require().NoError(os.WriteFile(s.cfg.RatesPath(), []byte(rates), 0o644))
}

func (s *CLITestSuite) run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, &stdout, &stderr, WithConfigLoader(func() (*config.Config, error) {
		cfg := *s.cfg
		return &cfg, nil
	}))
	return code, stdout.String(), stderr.String()
}

func (s *CLITestSuite) mustRun(args ...string) string {
	code, out, errOut := s.run(args...)
	s.Require().Equal(0, code, "stderr: %s", errOut)
	return out
}

func (s *CLITestSuite) TestTradingSession() {
	out := s.mustRun("register", "--username", "alice", "--password", "1234")
	s.Contains(out, "User 'alice' registered")

	code, _, errOut := s.run("register", "--username", "ALICE", "--password", "5678")
	s.Equal(1, code)
	s.NotEmpty(errOut)

	code, _, errOut = s.run("buy", "--currency", "BTC", "--amount", "0.01")
	s.Equal(1, code)
	s.Contains(errOut, "not logged in")

	code, _, errOut = s.run("login", "--username", "alice", "--password", "wrong")
	s.Equal(1, code)
	s.Contains(errOut, "Unauthorized")

	out = s.mustRun("login", "--username", "alice", "--password", "1234")
	s.Contains(out, "Logged in as 'alice'")

	out = s.mustRun("buy", "--currency", "btc", "--amount", "0.01")
	s.Contains(out, "Bought 0.01000000 BTC")
	s.Contains(out, "400.00")

	out = s.mustRun("show-portfolio")
	s.Contains(out, "BTC")
	s.Contains(out, "TOTAL: $1,000.00")

	out = s.mustRun("show-portfolio", "--base", "EUR")
	s.Contains(out, "base: EUR")

	code, _, errOut = s.run("buy", "--currency", "BTC", "--amount", "1")
	s.Equal(1, code)
	s.Contains(errOut, "Insufficient funds")

	code, _, errOut = s.run("sell", "--currency", "XRP", "--amount", "1")
	s.Equal(1, code)
	s.Contains(errOut, "Unknown currency 'XRP'")

	code, _, errOut = s.run("buy", "--currency", "SOL", "--amount", "1")
	s.Equal(1, code)
	s.Contains(errOut, "SOL_USD")

	code, _, errOut = s.run("buy", "--currency", "BTC", "--amount", "-1")
	s.Equal(1, code)
	s.Contains(errOut, "Amount must be a positive number")

	out = s.mustRun("sell", "--currency", "BTC", "--amount", "0.01")
	s.Contains(out, "Sold 0.01000000 BTC")

	out = s.mustRun("open-wallet", "--currency", "eth")
	s.Contains(out, "Wallet ETH opened")

	s.Contains(s.mustRun("logout"), "Logged out")
	code, _, _ = s.run("show-portfolio")
	s.Equal(1, code)
}

func (s *CLITestSuite) TestRateCommands() {
	out := s.mustRun("get-rate", "--from", "USD", "--to", "BTC")
	s.Contains(out, "Rate USD→BTC")
	s.Contains(out, "source CoinGecko")

	out = s.mustRun("show-rates", "--currency", "eur")
	s.Contains(out, "EUR_USD")
	s.NotContains(out, "BTC_USD")

	out = s.mustRun("show-rates", "--currency", "gbp")
	s.Contains(out, "No cached rates for 'GBP'")

	out = s.mustRun("list-currencies")
	s.Contains(out, "BTC")
	s.Contains(out, "USD")

	code, _, errOut := s.run("update-rates")
	s.Equal(1, code)
	s.NotEmpty(errOut)
}

func (s *CLITestSuite) TestEmptyRatesCache() {
	s.Require().NoError(os.Remove(s.cfg.RatesPath()))
	out := s.mustRun("show-rates")
	s.Contains(out, "Local rates cache is empty")
}

func TestCLITestSuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func TestFriendlyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"funds", apperrors.NewInsufficientFunds("USD", decimal.NewFromInt(100), decimal.NewFromInt(600)), "Insufficient funds: available 100 USD, required 600 USD"},
		{"currency", apperrors.NewCurrencyNotFound("XRP"), "Unknown currency 'XRP'"},
		{"trade rate", fmt.Errorf("%w: %w", apperrors.ErrTradeRateUnavailable, apperrors.NewRateUnavailable("SOL", "USD")), "Rate SOL_USD is unavailable"},
		{"api", &apperrors.APIRequestError{Source: "CoinGecko", Reason: "timeout"}, "Could not reach CoinGecko (timeout)"},
		{"validation", apperrors.NewValidationError("username is required"), "Validation error: username is required"},
		{"unknown", errors.New("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, FriendlyError(tt.err), tt.want)
		})
	}
}

func TestNewRootCommand_ListsEveryCommand(t *testing.T) {
	root := NewRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"register", "login", "logout", "show-portfolio", "open-wallet", "buy", "sell",
		"get-rate", "show-rates", "update-rates", "list-currencies", "schedule", "serve"} {
		require.Contains(t, names, want)
	}
}
