package memory

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Gunvolt24/rapid_express/internal/ports"
	"github.com/Gunvolt24/rapid_express/pkg/metrics"
)

// Проверка, что LRUCacheTTL удовлетворяет интерфейсу Cache.
var _ ports.Cache = (*LRUCacheTTL)(nil)

const backend = "memory"

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time // нулевое значение: без срока
}

// LRUCacheTTL: потокобезопасный in-process кэш: LRU-вытеснение по ёмкости и TTL на запись.
type LRUCacheTTL struct {
	capacity   int
	defaultTTL time.Duration

	ll    *list.List
	index map[string]*list.Element

	mu  sync.Mutex
	now func() time.Time
}

// NewLRUCacheTTL: конструктор. defaultTTL применяется, когда Set получает ttl <= 0.
func NewLRUCacheTTL(capacity int, defaultTTL time.Duration) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity:   capacity,
		defaultTTL: defaultTTL,
		ll:         list.New(),
		index:      make(map[string]*list.Element),
		now:        time.Now,
	}
}

// Get: копия значения при попадании; истёкшая запись удаляется и считается промахом.
func (c *LRUCacheTTL) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[key]
	if !ok {
		metrics.CacheOps.WithLabelValues(backend, "miss").Inc()
		return nil, false, nil
	}
	ent := elem.Value.(*entry)
	if isExpired(ent, c.now()) {
		metrics.CacheOps.WithLabelValues(backend, "expired").Inc()
		c.removeElement(elem)
		c.reportSize()
		return nil, false, nil
	}
	c.ll.MoveToFront(elem)

	metrics.CacheOps.WithLabelValues(backend, "hit").Inc()
	return cloneBytes(ent.value), true, nil
}

// Set: записать/перезаписать значение.
func (c *LRUCacheTTL) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return nil
	}
	now := c.now()
	expiresAt := c.expiryFrom(now, ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		ent := elem.Value.(*entry)
		ent.value = cloneBytes(value)
		ent.expiresAt = expiresAt
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{key: key, value: cloneBytes(value), expiresAt: expiresAt})
	c.index[key] = elem

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	c.reportSize()
	return nil
}

// Delete: удалить ключи.
func (c *LRUCacheTTL) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		if elem, ok := c.index[key]; ok {
			c.removeElement(elem)
			metrics.CacheOps.WithLabelValues(backend, "invalidated").Inc()
		}
	}
	c.reportSize()
	return nil
}

// DeletePrefix: удалить все ключи с префиксом (полный проход по индексу).
func (c *LRUCacheTTL) DeletePrefix(_ context.Context, prefix string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, elem := range c.index {
		if strings.HasPrefix(key, prefix) {
			c.removeElement(elem)
			removed++
		}
	}
	metrics.CacheOps.WithLabelValues(backend, "invalidated").Add(float64(removed))
	c.reportSize()
	return removed, nil
}

// Len: число записей (включая ещё не вычищенные истёкшие).
func (c *LRUCacheTTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
