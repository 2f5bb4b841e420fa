package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"
)

var validBackends = []string{BackendMemory, BackendSQLite, BackendPostgres, BackendSupabase}

type Config struct {
	// Telegram
	TelegramToken string
	WebhookHost   string
	Port          string

	// Хранилище
	DataBackend  string
	SQLiteDBPath string
	DatabaseURL  string
	SupabaseURL  string
	SupabaseKey  string

	// Курсы валют
	ExchangeAPIURL string
	ExchangeAPIKey string
	RateTTL        time.Duration
	RateTimeout    time.Duration

	// Реклама перед результатом
	AdsgramURL string
	AdDelay    time.Duration

	ChartsEnabled   bool
	DefaultLanguage string

	// Время жизни незавершенного диалога, 0 - без ограничения
	SessionTTL time.Duration

	LogLevel  string
	LogFormat string

	// значения окружения, которые не удалось разобрать
	parseErrs []string
}

// LoadConfig читает .env (если он есть) и переменные окружения
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Load(), nil
}

// Load собирает конфигурацию только из окружения.
// Ошибки разбора значений сообщает Validate.
func Load() *Config {
	token := getEnv("TELEGRAM_TOKEN", "")
	if token == "" {
		token = getEnv("BOT_TOKEN", "")
	}

	var env envReader
	c := &Config{
		TelegramToken: token,
		WebhookHost:   strings.TrimRight(getEnv("WEBHOOK_HOST", ""), "/"),
		Port:          getEnv("PORT", "8080"),

		DataBackend:  getEnv("DATA_BACKEND", BackendMemory),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/smartbalance.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		SupabaseURL:  getEnv("SUPABASE_URL", ""),
		SupabaseKey:  getEnv("SUPABASE_KEY", ""),

		ExchangeAPIURL: getEnv("EXCHANGE_API_URL", "https://v6.exchangerate-api.com"),
		ExchangeAPIKey: getEnv("EXCHANGE_API_KEY", ""),
		RateTTL:        env.duration("RATE_TTL", time.Hour),
		RateTimeout:    env.duration("RATE_TIMEOUT", 5*time.Second),

		AdsgramURL: getEnv("ADSGRAM_URL", ""),
		AdDelay:    env.duration("AD_DELAY", 5*time.Second),

		ChartsEnabled:   env.boolean("CHARTS_ENABLED", true),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "uz"),
		SessionTTL:      env.duration("SESSION_TTL", 0),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
	c.parseErrs = env.errs
	return c
}

// WebhookPath путь, на который Telegram присылает обновления
func (c *Config) WebhookPath() string {
	return "/webhook/" + c.TelegramToken
}

// WebhookURL полный адрес вебхука, пустой в режиме long polling
func (c *Config) WebhookURL() string {
	if c.WebhookHost == "" {
		return ""
	}
	return c.WebhookHost + c.WebhookPath()
}

// Validate проверяет конфигурацию и возвращает все найденные ошибки разом
func (c *Config) Validate() error {
	errs := slices.Clone(c.parseErrs)

	if c.TelegramToken == "" {
		errs = append(errs, "TELEGRAM_TOKEN (or BOT_TOKEN) is required")
	}

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.WebhookHost != "" {
		if u, err := url.Parse(c.WebhookHost); err != nil || u.Host == "" {
			errs = append(errs, fmt.Sprintf("invalid webhook host '%s'", c.WebhookHost))
		} else if u.Scheme != "https" {
			errs = append(errs, "webhook host must use https")
		}
	}

	if !slices.Contains(validBackends, c.DataBackend) {
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}
	switch c.DataBackend {
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required when using postgres backend")
		}
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			errs = append(errs, "SUPABASE_URL and SUPABASE_KEY are required when using supabase backend")
		}
	}

	if _, err := url.Parse(c.ExchangeAPIURL); err != nil || c.ExchangeAPIURL == "" {
		errs = append(errs, fmt.Sprintf("invalid exchange API URL '%s'", c.ExchangeAPIURL))
	}
	if c.RateTTL <= 0 {
		errs = append(errs, "RATE_TTL must be positive")
	}
	if c.RateTimeout <= 0 {
		errs = append(errs, "RATE_TIMEOUT must be positive")
	}
	if c.AdDelay < 0 {
		errs = append(errs, "AD_DELAY cannot be negative")
	}
	if c.SessionTTL < 0 {
		errs = append(errs, "SESSION_TTL cannot be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// ValidatePersistent требует хранилище, переживающее перезапуск процесса
func (c *Config) ValidatePersistent() error {
	if c.DataBackend == BackendMemory || c.DataBackend == "" {
		return fmt.Errorf("data backend '%s' loses records between invocations: use one of %v",
			BackendMemory, validBackends[1:])
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

type envReader struct {
	errs []string
}

func (r *envReader) duration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		r.errs = append(r.errs, fmt.Sprintf("invalid %s '%s': must be a duration like 5s or 1h", key, value))
		return defaultValue
	}
	return d
}

func (r *envReader) boolean(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		r.errs = append(r.errs, fmt.Sprintf("invalid %s '%s': must be true or false", key, value))
		return defaultValue
	}
	return b
}
