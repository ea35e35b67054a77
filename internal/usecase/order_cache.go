package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/pkg/strcase"
)

// Ключи кэша заказов.
const (
	ListCachePrefix   = "orders:list:"
	DetailCachePrefix = "orders:detail:"

	allCustomers = "all"
	allDates     = "all dates"
	dayLayout    = "2006-01-02"
)

// DefaultCacheTTL: время жизни записей листинга и деталей.
const DefaultCacheTTL = time.Hour

// ListCacheKey: детерминированный ключ листинга из нормализованных параметров.
// Фильтр по клиенту сохраняет регистр: поиск в хранилище регистрозависимый.
func ListCacheKey(q domain.OrderListQuery) string {
	q = q.WithDefaults()

	customer := allCustomers
	if c := strings.TrimSpace(q.Customer); c != "" {
		customer = url.QueryEscape(c)
	}

	date := allDates
	if q.StartDate != nil || q.EndDate != nil {
		date = formatDay(q.StartDate) + "_" + formatDay(q.EndDate)
	}

	return fmt.Sprintf("%scustomer=%s:date=%s:page=%d:limit=%d:sort_by=%s:sort_order=%s",
		ListCachePrefix, customer, date, q.Page, q.Limit,
		strcase.ToSnake(q.SortBy), strings.ToLower(q.SortOrder))
}

// DetailCacheKey: ключ деталей заказа.
func DetailCacheKey(orderID int64) string {
	return DetailCachePrefix + strconv.FormatInt(orderID, 10)
}

func formatDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dayLayout)
}

// cacheGet: best-effort чтение: любая ошибка кэша считается промахом.
func (s *OrderService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warnf(ctx, "cache.Get failed key=%s err=%v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warnf(ctx, "cache entry is corrupted key=%s err=%v", key, err)
		return false
	}
	return true
}

// cacheSet: best-effort запись: ошибка только логируется.
func (s *OrderService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Warnf(ctx, "cache marshal failed key=%s err=%v", key, err)
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.log.Warnf(ctx, "cache.Set failed key=%s err=%v", key, err)
	}
}

// invalidate: после успешной мутации: ключ деталей (если orderID > 0) и все страницы листинга.
func (s *OrderService) invalidate(ctx context.Context, orderID int64) {
	if s.cache == nil {
		return
	}
	if orderID > 0 {
		if err := s.cache.Delete(ctx, DetailCacheKey(orderID)); err != nil {
			s.log.Warnf(ctx, "cache.Delete failed order_id=%d err=%v", orderID, err)
		}
	}
	n, err := s.cache.DeletePrefix(ctx, ListCachePrefix)
	if err != nil {
		s.log.Warnf(ctx, "cache.DeletePrefix failed prefix=%s err=%v", ListCachePrefix, err)
		return
	}
	s.log.Infof(ctx, "cache invalidated listings=%d order_id=%d", n, orderID)
}
