package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/internal/ports"
	"github.com/Gunvolt24/rapid_express/pkg/metrics"
	"github.com/Gunvolt24/rapid_express/pkg/validate"
)

var _ ports.OrderService = (*OrderService)(nil)

// Сообщения о сбоях хранилища (причина уходит в лог, клиенту не отдаётся).
const (
	msgListFailed   = "Failed to retrieve orders"
	msgDetailFailed = "Failed to retrieve order"
	msgCreateFailed = "Failed to create order"
	msgUpdateFailed = "Failed to update order"
	msgDeleteFailed = "Failed to delete order"
)

// OrderService: прикладная логика работы с заказами (без знаний о транспорте).
type OrderService struct {
	repo      ports.OrderRepository // атомарная запись
	query     ports.OrderQuery      // листинг и детали
	catalog   ports.ProductCatalog  // цены товаров
	customers ports.CustomerLookup  // проверка клиента
	validator ports.OrderValidator  // проверки без обращения к хранилищу
	cache     ports.Cache           // nil: работа без кэша
	ttl       time.Duration
	log       ports.Logger
}

// NewOrderService: DI-конструктор. cache может быть nil; ttl <= 0 заменяется на час.
func NewOrderService(
	repo ports.OrderRepository,
	query ports.OrderQuery,
	catalog ports.ProductCatalog,
	customers ports.CustomerLookup,
	validator ports.OrderValidator,
	cache ports.Cache,
	ttl time.Duration,
	log ports.Logger,
) *OrderService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &OrderService{
		repo:      repo,
		query:     query,
		catalog:   catalog,
		customers: customers,
		validator: validator,
		cache:     cache,
		ttl:       ttl,
		log:       log,
	}
}

// ListOrders: страница листинга: сначала кэш, при промахе хранилище с записью в кэш.
// Попадание в кэш сразу возвращает результат, хранилище не читается.
func (s *OrderService) ListOrders(ctx context.Context, q domain.OrderListQuery) (*domain.OrderPage, error) {
	q = q.WithDefaults()
	if !domain.IsValidSortBy(q.SortBy) || !domain.IsValidSortOrder(q.SortOrder) {
		return nil, domain.InvalidInput(domain.MsgInvalidQuery)
	}

	key := ListCacheKey(q)
	var cached domain.OrderPage
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	orders, total, err := s.query.List(ctx, q)
	if err != nil {
		return nil, s.fail(ctx, msgListFailed, err)
	}

	page := &domain.OrderPage{Orders: orders, Meta: domain.NewPageMeta(q.Page, q.Limit, total)}
	s.cacheSet(ctx, key, page)

	s.log.Infof(ctx, "db fetch orders page=%d total=%d took=%s", q.Page, total, time.Since(start))
	return page, nil
}

// GetOrder: детали заказа через кэш; отсутствующий заказ даёт NotFound.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*domain.OrderDetail, error) {
	key := DetailCacheKey(orderID)
	var cached domain.OrderDetail
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	detail, err := s.query.Detail(ctx, orderID)
	if err != nil {
		return nil, s.fail(ctx, msgDetailFailed, err)
	}
	if detail == nil {
		return nil, domain.NotFound(domain.MsgOrderNotFound)
	}

	s.cacheSet(ctx, key, detail)
	return detail, nil
}

// CreateOrder: проверки позиций, клиент, цены каталога, транзакционная запись, инвалидация кэша.
func (s *OrderService) CreateOrder(ctx context.Context, in domain.CreateOrderInput) (*domain.Order, error) {
	order, err := s.createOrder(ctx, in)
	observeMutation("create", err)
	return order, err
}

func (s *OrderService) createOrder(ctx context.Context, in domain.CreateOrderInput) (*domain.Order, error) {
	// дубликаты отсекаются до любого обращения к хранилищу
	if err := s.validator.Validate(ctx, in.Products); err != nil {
		return nil, err
	}

	exists, err := s.customers.Exists(ctx, in.CustomerID)
	if err != nil {
		return nil, s.fail(ctx, msgCreateFailed, err)
	}
	if !exists {
		return nil, domain.NotFound(domain.MsgCustomerNotFound)
	}

	items, total, err := s.price(ctx, in.Products, msgCreateFailed)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.Create(ctx, in.CustomerID, total, items)
	if err != nil {
		return nil, s.fail(ctx, msgCreateFailed, err)
	}

	s.invalidate(ctx, 0)
	s.log.Infof(ctx, "order created id=%d customer_id=%d items=%d total=%d", order.ID, order.CustomerID, len(items), total)
	return order, nil
}

// UpdateOrder: полная замена позиций заказа.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID int64, lines []domain.LineItemInput) (*domain.Order, error) {
	order, err := s.updateOrder(ctx, orderID, lines)
	observeMutation("update", err)
	return order, err
}

func (s *OrderService) updateOrder(ctx context.Context, orderID int64, lines []domain.LineItemInput) (*domain.Order, error) {
	if err := s.validator.Validate(ctx, lines); err != nil {
		return nil, err
	}

	if err := s.ensureOrderExists(ctx, orderID, msgUpdateFailed); err != nil {
		return nil, err
	}

	items, total, err := s.price(ctx, lines, msgUpdateFailed)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.Update(ctx, orderID, total, items)
	if err != nil {
		return nil, s.fail(ctx, msgUpdateFailed, err)
	}

	s.invalidate(ctx, orderID)
	s.log.Infof(ctx, "order updated id=%d items=%d total=%d", orderID, len(items), total)
	return order, nil
}

// DeleteOrder: удаление заказа вместе с позициями.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID int64) error {
	err := s.deleteOrder(ctx, orderID)
	observeMutation("delete", err)
	return err
}

func (s *OrderService) deleteOrder(ctx context.Context, orderID int64) error {
	if err := s.ensureOrderExists(ctx, orderID, msgDeleteFailed); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, orderID); err != nil {
		return s.fail(ctx, msgDeleteFailed, err)
	}

	s.invalidate(ctx, orderID)
	s.log.Infof(ctx, "order deleted id=%d", orderID)
	return nil
}

// SaveFromMessage: создать заказ из сообщения брокера (raw JSON запроса на создание).
func (s *OrderService) SaveFromMessage(ctx context.Context, raw []byte) error {
	in, err := validate.DecodeCreateOrder(raw)
	if err != nil {
		s.log.Warnf(ctx, "invalid order message err=%v", err)
		return err
	}
	_, err = s.CreateOrder(ctx, *in)
	return err
}

// WarmUpCache: прогрев: первая страница листинга по умолчанию и детали первых n заказов.
// Если n <= 0 или кэш выключен, прогрев не выполняется (но это не ошибка).
func (s *OrderService) WarmUpCache(ctx context.Context, n int) error {
	if n <= 0 || s.cache == nil {
		s.log.Warnf(ctx, "cache warm-up skipped (n=%d, cache=%t)", n, s.cache != nil)
		return nil
	}

	start := time.Now()
	page, err := s.ListOrders(ctx, domain.OrderListQuery{})
	if err != nil {
		return err
	}

	warmed := 0
	for _, o := range page.Orders {
		if warmed >= n {
			break
		}
		if _, err := s.GetOrder(ctx, o.ID); err != nil {
			s.log.Warnf(ctx, "cache warm-up detail failed id=%d err=%v", o.ID, err)
			continue
		}
		warmed++
	}
	s.log.Infof(ctx, "cache warmed with %d orders in %s", warmed, time.Since(start))
	return nil
}

func (s *OrderService) ensureOrderExists(ctx context.Context, orderID int64, failMsg string) error {
	exists, err := s.repo.Exists(ctx, orderID)
	if err != nil {
		return s.fail(ctx, failMsg, err)
	}
	if !exists {
		return domain.NotFound(domain.MsgOrderNotFound)
	}
	return nil
}

// price: цены каталога для позиций. Неизвестный id отклоняет весь запрос без уточнения, какой именно.
func (s *OrderService) price(ctx context.Context, lines []domain.LineItemInput, failMsg string) ([]domain.OrderItem, int64, error) {
	ids := validate.DistinctProductIDs(lines)
	products, err := s.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, s.fail(ctx, failMsg, err)
	}
	if len(products) < len(ids) {
		return nil, 0, domain.InvalidInput(domain.MsgUnknownProducts)
	}
	return domain.PriceLines(lines, domain.PriceIndex(products))
}

// fail: доменные ошибки пропускаются как есть, остальное заворачивается в Internal.
func (s *OrderService) fail(ctx context.Context, msg string, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	s.log.Errorf(ctx, "%s: %v", msg, err)
	return domain.Internal(msg, err)
}

func observeMutation(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case domain.IsClientError(err):
		result = "rejected"
	default:
		result = "failed"
	}
	metrics.OrderMutations.WithLabelValues(op, result).Inc()
}
