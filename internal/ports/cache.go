package ports

import (
	"context"
	"time"
)

// Cache: key-value кэш с TTL и удалением по префиксу.
// Значения: сериализованные снимки; источник истины всегда хранилище.
type Cache interface {
	// Get: (value, true, nil) при попадании; (nil, false, nil) при промахе или истечении TTL.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set: записать значение с временем жизни ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete: удалить ключи; отсутствующие ключи не считаются ошибкой.
	Delete(ctx context.Context, keys ...string) error
	// DeletePrefix: удалить все ключи с префиксом, вернуть число удалённых.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}
