// Пакет redis: распределённый кэш на Redis (go-redis v9).
package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Gunvolt24/rapid_express/internal/ports"
	"github.com/Gunvolt24/rapid_express/pkg/metrics"
)

// Проверка, что Cache удовлетворяет интерфейсу Cache.
var _ ports.Cache = (*Cache)(nil)

const (
	backend       = "redis"
	scanBatchSize = 500
)

// Options: параметры подключения.
type Options struct {
	Host         string
	Port         int
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Cache: реализация ports.Cache поверх redis.UniversalClient.
type Cache struct {
	client goredis.UniversalClient
}

// New: создаёт клиента и проверяет соединение (PING).
func New(ctx context.Context, opts Options) (*Cache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)),
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Cache{client: client}, nil
}

// NewWithClient: обёртка над готовым клиентом (тесты, кластер).
func NewWithClient(client goredis.UniversalClient) *Cache { return &Cache{client: client} }

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, goredis.Nil):
		metrics.CacheOps.WithLabelValues(backend, "miss").Inc()
		return nil, false, nil
	case err != nil:
		metrics.CacheOps.WithLabelValues(backend, "error").Inc()
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	metrics.CacheOps.WithLabelValues(backend, "hit").Inc()
	return val, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		metrics.CacheOps.WithLabelValues(backend, "error").Inc()
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	n, err := c.client.Del(ctx, keys...).Result()
	if err != nil {
		metrics.CacheOps.WithLabelValues(backend, "error").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	metrics.CacheOps.WithLabelValues(backend, "invalidated").Add(float64(n))
	return nil
}

// DeletePrefix: SCAN MATCH prefix* пачками и DEL найденного.
// KEYS не используется: он блокирует сервер на больших базах.
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	pattern := escapeGlob(prefix) + "*"
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			metrics.CacheOps.WithLabelValues(backend, "error").Inc()
			return removed, fmt.Errorf("redis scan %q: %w", pattern, err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				metrics.CacheOps.WithLabelValues(backend, "error").Inc()
				return removed, fmt.Errorf("redis del: %w", err)
			}
			removed += int(n)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	metrics.CacheOps.WithLabelValues(backend, "invalidated").Add(float64(removed))
	return removed, nil
}

// Ping: проверка доступности.
func (c *Cache) Ping(ctx context.Context) error { return c.client.Ping(ctx).Err() }

// Close: закрывает клиента. Вызывается при остановке приложения.
func (c *Cache) Close() error { return c.client.Close() }

// escapeGlob: экранирует спецсимволы glob-шаблона SCAN MATCH.
func escapeGlob(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
