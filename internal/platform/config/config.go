package config

import (
	"errors"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	// Storage
	StorageDriver      string
	DataDir            string
	UsersFile          string
	PortfoliosFile     string
	RatesFile          string
	RatesHistoryFile   string
	DatabaseURL        string
	EnableDBMigrations bool

	// Trading
	BaseCurrency     string
	SignupBonus      decimal.Decimal
	RatesTTL         time.Duration
	StrictValuation  bool
	FiatCurrencies   []string
	CryptoCurrencies []string
	UpdateInterval   time.Duration
	UpdateRetryDelay time.Duration
	APITimeout       time.Duration
	APIRetryCount    int
	ExchangeRateKey  string
	CoinGeckoURL     string
	ExchangeRateURL  string

	// Logging
	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int

	// HTTP
	Port              string
	IsProduction      bool
	CORSOrigins       []string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	PosthogAPIKey     string
	AuthRateLimit     string

	// CLI
	SessionFile string
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from defaults, an optional TOML file, a .env
// file and VALUTATRADE_* environment variables, in increasing precedence.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("VALUTATRADE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("STORAGE_DRIVER", StorageFile)
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("USERS_FILE", "users.json")
	v.SetDefault("PORTFOLIOS_FILE", "portfolios.json")
	v.SetDefault("RATES_FILE", "rates.json")
	v.SetDefault("RATES_HISTORY_FILE", "exchange_rates.json")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_MIGRATIONS", true)
	v.SetDefault("BASE_CURRENCY", "USD")
	v.SetDefault("SIGNUP_BONUS", "1000")
	v.SetDefault("RATES_TTL", "300s")
	v.SetDefault("STRICT_VALUATION", false)
	v.SetDefault("FIAT_CURRENCIES", []string{"EUR", "GBP", "RUB"})
	v.SetDefault("CRYPTO_CURRENCIES", []string{"BTC", "ETH", "SOL"})
	v.SetDefault("UPDATE_INTERVAL", "5m")
	v.SetDefault("UPDATE_RETRY_DELAY", "30s")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("API_RETRY_COUNT", 2)
	v.SetDefault("EXCHANGERATE_API_KEY", "")
	v.SetDefault("COINGECKO_URL", "https://api.coingecko.com/api/v3")
	v.SetDefault("EXCHANGERATE_API_URL", "https://v6.exchangerate-api.com/v6")
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("LOG_FILE", filepath.Join("logs", "valutatrade.log"))
	v.SetDefault("LOG_MAX_SIZE_MB", 1)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("CORS_ORIGINS", []string{"http://localhost:3000"})
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "24h")
	v.SetDefault("JWT_ISSUER", "valutatrade-hub")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("AUTH_RATE_LIMIT", "5-M")
	v.SetDefault("SESSION_FILE", ".valutatrade_session")
	v.SetDefault("CONFIG", "valutatrade.toml")

	// The API key keeps its conventional unprefixed name as a fallback.
	_ = v.BindEnv("EXCHANGERATE_API_KEY", "VALUTATRADE_EXCHANGERATE_API_KEY", "EXCHANGERATE_API_KEY")
	_ = v.BindEnv("PGSQL_URL", "VALUTATRADE_PGSQL_URL", "PGSQL_URL")

	configFile := v.GetString("CONFIG")
	v.SetConfigFile(configFile)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	} else {
		log.Printf("Loaded configuration file %s\n", configFile)
	}

	cfg := &Config{
		StorageDriver:      strings.ToLower(v.GetString("STORAGE_DRIVER")),
		DataDir:            v.GetString("DATA_DIR"),
		UsersFile:          v.GetString("USERS_FILE"),
		PortfoliosFile:     v.GetString("PORTFOLIOS_FILE"),
		RatesFile:          v.GetString("RATES_FILE"),
		RatesHistoryFile:   v.GetString("RATES_HISTORY_FILE"),
		DatabaseURL:        v.GetString("PGSQL_URL"),
		EnableDBMigrations: v.GetBool("ENABLE_DB_MIGRATIONS"),
		BaseCurrency:       strings.ToUpper(strings.TrimSpace(v.GetString("BASE_CURRENCY"))),
		StrictValuation:    v.GetBool("STRICT_VALUATION"),
		FiatCurrencies:     upperAll(v.GetStringSlice("FIAT_CURRENCIES")),
		CryptoCurrencies:   upperAll(v.GetStringSlice("CRYPTO_CURRENCIES")),
		APIRetryCount:      v.GetInt("API_RETRY_COUNT"),
		ExchangeRateKey:    v.GetString("EXCHANGERATE_API_KEY"),
		CoinGeckoURL:       v.GetString("COINGECKO_URL"),
		ExchangeRateURL:    v.GetString("EXCHANGERATE_API_URL"),
		LogLevel:           strings.ToUpper(v.GetString("LOG_LEVEL")),
		LogFile:            v.GetString("LOG_FILE"),
		LogMaxSizeMB:       v.GetInt("LOG_MAX_SIZE_MB"),
		LogMaxBackups:      v.GetInt("LOG_MAX_BACKUPS"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		CORSOrigins:        v.GetStringSlice("CORS_ORIGINS"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		PosthogAPIKey:      v.GetString("POSTHOG_API_KEY"),
		AuthRateLimit:      v.GetString("AUTH_RATE_LIMIT"),
		SessionFile:        v.GetString("SESSION_FILE"),
	}

	switch cfg.StorageDriver {
	case StorageFile:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: storage driver is postgres but PGSQL_URL is not set.")
		}
	default:
		log.Printf("Warning: unknown STORAGE_DRIVER %q. Defaulting to %s.\n", cfg.StorageDriver, StorageFile)
		cfg.StorageDriver = StorageFile
	}

	if cfg.BaseCurrency == "" {
		cfg.BaseCurrency = "USD"
		log.Printf("Warning: BASE_CURRENCY is empty. Defaulting to %s.\n", cfg.BaseCurrency)
	}

	bonus, err := decimal.NewFromString(v.GetString("SIGNUP_BONUS"))
	if err != nil || bonus.IsNegative() {
		bonus = decimal.NewFromInt(1000)
		log.Printf("Warning: Invalid value for SIGNUP_BONUS ('%s'). Defaulting to %s.\n", v.GetString("SIGNUP_BONUS"), bonus)
	}
	cfg.SignupBonus = bonus

	cfg.RatesTTL = parseDuration(v, "RATES_TTL", 300*time.Second)
	cfg.UpdateInterval = parseDuration(v, "UPDATE_INTERVAL", 5*time.Minute)
	cfg.UpdateRetryDelay = parseDuration(v, "UPDATE_RETRY_DELAY", 30*time.Second)
	cfg.APITimeout = parseDuration(v, "API_TIMEOUT", 10*time.Second)
	cfg.JWTExpiryDuration = parseDuration(v, "JWT_EXPIRY_DURATION", 24*time.Hour)

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		if cfg.IsProduction {
			log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
		}
	}

	return cfg, nil
}

// UsersPath returns the path of the users file.
func (c *Config) UsersPath() string { return filepath.Join(c.DataDir, c.UsersFile) }

// PortfoliosPath returns the path of the portfolios file.
func (c *Config) PortfoliosPath() string { return filepath.Join(c.DataDir, c.PortfoliosFile) }

// RatesPath returns the path of the rates snapshot file.
func (c *Config) RatesPath() string { return filepath.Join(c.DataDir, c.RatesFile) }

// RatesHistoryPath returns the path of the rates history file.
func (c *Config) RatesHistoryPath() string { return filepath.Join(c.DataDir, c.RatesHistoryFile) }

// parseDuration accepts Go durations ("5m") and bare integers, read as seconds.
func parseDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
		return d
	}
	if secs, err := decimal.NewFromString(raw); err == nil && !secs.IsNegative() {
		return time.Duration(secs.IntPart()) * time.Second
	}
	log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
	return fallback
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func upperAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// SessionPath returns the CLI session file, resolved against DataDir when relative.
func (c *Config) SessionPath() string {
	if filepath.IsAbs(c.SessionFile) {
		return c.SessionFile
	}
	return filepath.Join(c.DataDir, c.SessionFile)
}
