package app

import (
	"context"
	"fmt"
	"time"

	"github.com/ivanoskov/smartbalance_bot/internal/bot"
	"github.com/ivanoskov/smartbalance_bot/internal/cache"
	"github.com/ivanoskov/smartbalance_bot/internal/charts"
	"github.com/ivanoskov/smartbalance_bot/internal/config"
	"github.com/ivanoskov/smartbalance_bot/internal/currency"
	"github.com/ivanoskov/smartbalance_bot/internal/dialogue"
	"github.com/ivanoskov/smartbalance_bot/internal/log"
	"github.com/ivanoskov/smartbalance_bot/internal/repository"
	"github.com/ivanoskov/smartbalance_bot/internal/service"
)

// Как часто из кэшей курсов и сессий удаляются просроченные записи
const cacheCleanupInterval = 10 * time.Minute

// App собранные компоненты бота
type App struct {
	Bot     *bot.Bot
	Tracker *service.ExpenseTracker
	caches  *cache.Manager
	cleanup func() error
	logger  *log.Logger
}

// NewLogger логгер по настройкам окружения
func NewLogger(cfg *config.Config) *log.Logger {
	lc := log.DefaultConfig()
	lc.Level = log.ParseLevel(cfg.LogLevel)
	lc.Format = cfg.LogFormat
	logger := log.New(lc)
	log.SetDefault(logger)
	return logger
}

// New открывает хранилище и собирает сервис, машину диалогов и бота.
// botOpts дополняют настройки бота, собранные из cfg.
func New(ctx context.Context, cfg *config.Config, logger *log.Logger, botOpts ...bot.Option) (*App, error) {
	storage, err := repository.Open(ctx, repository.Options{
		Backend:     cfg.DataBackend,
		SQLitePath:  cfg.SQLiteDBPath,
		DatabaseURL: cfg.DatabaseURL,
		SupabaseURL: cfg.SupabaseURL,
		SupabaseKey: cfg.SupabaseKey,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	rates := currency.NewRateCache(
		currency.NewExchangeRateAPI(cfg.ExchangeAPIURL, cfg.ExchangeAPIKey, cfg.RateTimeout),
		currency.RateCacheConfig{
			TTL:     cfg.RateTTL,
			Timeout: cfg.RateTimeout,
			Logger:  logger,
		})
	if cfg.ExchangeAPIKey == "" {
		logger.Warn("EXCHANGE_API_KEY is empty, conversions will use the fallback rate")
	}

	tracker := service.NewExpenseTracker(storage.Repository, currency.NewConverter(rates),
		service.WithLogger(logger))

	sessions := dialogue.NewMemoryStore(0, cfg.SessionTTL)
	caches := cache.NewManager(logger.WithComponent(log.ComponentApp))
	caches.Register(rates)
	if cfg.SessionTTL > 0 {
		caches.Register(sessions)
	}

	machine := dialogue.NewMachine(tracker,
		sessions,
		dialogue.WithDefaultLanguage(cfg.DefaultLanguage),
		dialogue.WithLogger(logger))

	opts := []bot.Option{
		bot.WithLogger(logger),
		bot.WithInterstitial(cfg.AdsgramURL, cfg.AdDelay),
	}
	if cfg.ChartsEnabled {
		opts = append(opts, bot.WithCharts(charts.NewChartGenerator()))
	}
	opts = append(opts, botOpts...)

	b, err := bot.NewBot(cfg.TelegramToken, machine, opts...)
	if err != nil {
		_ = storage.Cleanup()
		return nil, err
	}

	caches.StartCleanup(cacheCleanupInterval)

	return &App{
		Bot:     b,
		Tracker: tracker,
		caches:  caches,
		cleanup: storage.Cleanup,
		logger:  logger,
	}, nil
}

// Close дожидается отложенных сообщений и закрывает хранилище
func (a *App) Close() error {
	a.Bot.Shutdown()
	a.caches.Stop()
	if err := a.cleanup(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	a.logger.Info("shutdown complete", log.FieldOperation, log.OpShutdown)
	return nil
}
