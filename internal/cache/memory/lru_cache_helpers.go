package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/rapid_express/pkg/metrics"
)

// evictLRU: удаляет наименее используемый элемент.
func (c *LRUCacheTTL) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues(backend, "evicted").Inc()
	}
}

// removeElement: удаляет элемент из списка и индекса.
func (c *LRUCacheTTL) removeElement(elem *list.Element) {
	if ent, ok := elem.Value.(*entry); ok {
		delete(c.index, ent.key)
	}
	c.ll.Remove(elem)
}

func (c *LRUCacheTTL) reportSize() {
	metrics.CacheSize.WithLabelValues(backend).Set(float64(c.ll.Len()))
}

// expiryFrom: момент истечения; ttl <= 0 заменяется defaultTTL, оба <= 0: без срока.
func (c *LRUCacheTTL) expiryFrom(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

func isExpired(ent *entry, now time.Time) bool {
	return !ent.expiresAt.IsZero() && now.After(ent.expiresAt)
}

// pruneExpiredFromBack: удаляет истёкшие элементы с хвоста до первого актуального.
func (c *LRUCacheTTL) pruneExpiredFromBack(now time.Time) {
	for {
		back := c.ll.Back()
		if back == nil {
			return
		}
		if !isExpired(back.Value.(*entry), now) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues(backend, "expired").Inc()
	}
}

// cloneBytes: копия, чтобы внешние изменения не отражались на данных внутри кэша.
func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
