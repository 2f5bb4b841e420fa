package currency

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ivanoskov/smartbalance_bot/internal/cache"
	"github.com/ivanoskov/smartbalance_bot/internal/log"
)

// FallbackRate используется, когда источник курсов недоступен
const FallbackRate = 1.0

const maxCachedPairs = 512

// RateCache кэширует курсы по упорядоченной паре валют.
// Ошибки источника не кэшируются и не возвращаются вызывающему.
type RateCache struct {
	source  RateSource
	cache   *cache.LRUCache[float64]
	group   singleflight.Group
	timeout time.Duration
	logger  *log.Logger
}

type RateCacheConfig struct {
	TTL     time.Duration
	Timeout time.Duration
	Now     func() time.Time
	Logger  *log.Logger
}

func NewRateCache(source RateSource, cfg RateCacheConfig) *RateCache {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Nop()
	}
	var opts []cache.Option
	if cfg.Now != nil {
		opts = append(opts, cache.WithClock(cfg.Now))
	}
	return &RateCache{
		source:  source,
		cache:   cache.NewLRUCache[float64](maxCachedPairs, cfg.TTL, opts...),
		timeout: cfg.Timeout,
		logger:  cfg.Logger.WithComponent(log.ComponentRates),
	}
}

func pairKey(from, to string) string {
	return from + "_" + to
}

// Rate возвращает курс from -> to. Никогда не блокирует дольше таймаута
// и при любой ошибке источника возвращает FallbackRate.
func (c *RateCache) Rate(ctx context.Context, from, to string) float64 {
	key := pairKey(from, to)
	if rate, ok := c.cache.Get(key); ok {
		return rate
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if rate, ok := c.cache.Get(key); ok {
			return rate, nil
		}
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		start := time.Now()
		rate, err := c.source.Rate(lookupCtx, from, to)
		if err != nil {
			return nil, err
		}
		c.cache.Set(key, rate)
		c.logger.DebugContext(ctx, "rate refreshed",
			log.FieldPair, key,
			log.FieldRate, rate,
			log.FieldDuration, time.Since(start).Milliseconds())
		return rate, nil
	})
	if err != nil {
		c.logger.WarnContext(ctx, "rate lookup failed, using fallback",
			log.FieldPair, key,
			log.FieldError, err)
		return FallbackRate
	}
	return v.(float64)
}

// CleanExpired удаляет устаревшие курсы
func (c *RateCache) CleanExpired() int {
	return c.cache.CleanExpired()
}
