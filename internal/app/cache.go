package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/rapid_express/config"
	"github.com/Gunvolt24/rapid_express/internal/cache/memory"
	"github.com/Gunvolt24/rapid_express/internal/cache/redis"
	"github.com/Gunvolt24/rapid_express/internal/ports"
)

const (
	cacheDriverMemory = "memory"
	cacheDriverRedis  = "redis"
	cacheDriverNone   = "none"
)

// newCache: кэш заказов по Cache.Driver. Для none возвращается nil: сервис работает напрямую с базой.
func newCache(ctx context.Context, cfg *config.Config, log ports.Logger) (ports.Cache, func() error, error) {
	noop := func() error { return nil }

	switch driver := strings.ToLower(strings.TrimSpace(cfg.Cache.Driver)); driver {
	case cacheDriverMemory, "":
		log.Infof(ctx, "order cache: memory capacity=%d ttl=%s", cfg.Cache.Capacity, cfg.Cache.TTL)
		return memory.NewLRUCacheTTL(cfg.Cache.Capacity, cfg.Cache.TTL), noop, nil
	case cacheDriverRedis:
		c, err := redis.New(ctx, redis.Options{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			return nil, noop, err
		}
		log.Infof(ctx, "order cache: redis %s:%d db=%d ttl=%s", cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.DB, cfg.Cache.TTL)
		return c, c.Close, nil
	case cacheDriverNone:
		log.Warnf(ctx, "order cache disabled")
		return nil, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown cache driver %q", driver)
	}
}
