package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Gunvolt24/rapid_express/internal/cache/memory"
	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/internal/ports"
	"github.com/Gunvolt24/rapid_express/internal/ports/mocks"
	"github.com/Gunvolt24/rapid_express/internal/usecase"
	"github.com/Gunvolt24/rapid_express/pkg/validate"
	"github.com/golang/mock/gomock"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

type orderDeps struct {
	repo      *mocks.MockOrderRepository
	query     *mocks.MockOrderQuery
	catalog   *mocks.MockProductCatalog
	customers *mocks.MockCustomerLookup
}

func newOrderDeps(t *testing.T) orderDeps {
	ctrl := gomock.NewController(t)
	return orderDeps{
		repo:      mocks.NewMockOrderRepository(ctrl),
		query:     mocks.NewMockOrderQuery(ctrl),
		catalog:   mocks.NewMockProductCatalog(ctrl),
		customers: mocks.NewMockCustomerLookup(ctrl),
	}
}

func (d orderDeps) service(cache ports.Cache) *usecase.OrderService {
	return usecase.NewOrderService(d.repo, d.query, d.catalog, d.customers,
		validate.NewOrderValidator(), cache, time.Hour, noopLogger{})
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestListOrders_CacheHit_ShortCircuits(t *testing.T) {
	d := newOrderDeps(t)
	cache := mocks.NewMockCache(gomock.NewController(t))

	page := domain.OrderPage{
		Orders: []domain.OrderSummary{{ID: 1, CustomerName: "Midi Store", TotalPrice: 100}},
		Meta:   domain.NewPageMeta(1, 10, 1),
	}
	key := usecase.ListCacheKey(domain.OrderListQuery{})

	cache.EXPECT().Get(gomock.Any(), key).Return(mustJSON(t, page), true, nil)
	d.query.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

	got, err := d.service(cache).ListOrders(context.Background(), domain.OrderListQuery{})
	if err != nil || got == nil || len(got.Orders) != 1 || got.Orders[0].CustomerName != "Midi Store" {
		t.Fatalf("expected cached page, got err=%v page=%+v", err, got)
	}
}

func TestListOrders_CacheMiss_FetchAndCache(t *testing.T) {
	d := newOrderDeps(t)
	cache := mocks.NewMockCache(gomock.NewController(t))

	q := domain.OrderListQuery{Page: 2, Limit: 10, SortBy: domain.SortByTotalPrice, SortOrder: domain.SortAsc}
	key := usecase.ListCacheKey(q)
	rows := make([]domain.OrderSummary, 10)

	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), key).Return(nil, false, nil),
		d.query.EXPECT().List(gomock.Any(), q).Return(rows, int64(25), nil),
		cache.EXPECT().Set(gomock.Any(), key, gomock.Any(), time.Hour).Return(nil),
	)

	got, err := d.service(cache).ListOrders(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got.Orders) != 10 || got.Meta.LastPage != 3 || got.Meta.Total != 25 || got.Meta.CurrentPage != 2 {
		t.Fatalf("unexpected page meta: %+v", got.Meta)
	}
}

func TestListOrders_CacheFailure_ServedFromStore(t *testing.T) {
	d := newOrderDeps(t)
	cache := mocks.NewMockCache(gomock.NewController(t))

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("redis down"))
	d.query.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, int64(0), nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	got, err := d.service(cache).ListOrders(context.Background(), domain.OrderListQuery{})
	if err != nil || got == nil || got.Meta.LastPage != 0 {
		t.Fatalf("cache failure must not fail the read, got err=%v page=%+v", err, got)
	}
}

func TestListOrders_CorruptedEntry_TreatedAsMiss(t *testing.T) {
	d := newOrderDeps(t)
	cache := mocks.NewMockCache(gomock.NewController(t))

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return([]byte("{not json"), true, nil)
	d.query.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, int64(0), nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	if _, err := d.service(cache).ListOrders(context.Background(), domain.OrderListQuery{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestListOrders_WithoutCache(t *testing.T) {
	d := newOrderDeps(t)
	d.query.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, int64(0), nil).Times(2)

	svc := d.service(nil)
	for i := 0; i < 2; i++ {
		if _, err := svc.ListOrders(context.Background(), domain.OrderListQuery{}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
}

func TestListOrders_InvalidSort(t *testing.T) {
	d := newOrderDeps(t)

	_, err := d.service(nil).ListOrders(context.Background(), domain.OrderListQuery{SortBy: "customer_name"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestListOrders_StoreFailure_Internal(t *testing.T) {
	d := newOrderDeps(t)
	d.query.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, int64(0), errors.New("conn refused"))

	_, err := d.service(nil).ListOrders(context.Background(), domain.OrderListQuery{})
	if !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("want ErrInternal, got %v", err)
	}
	if msg := domain.MessageOf(err, ""); msg != "Failed to retrieve orders" {
		t.Fatalf("client message must hide the cause, got %q", msg)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	d := newOrderDeps(t)
	d.query.EXPECT().Detail(gomock.Any(), int64(5)).Return(nil, nil)

	_, err := d.service(nil).GetOrder(context.Background(), 5)
	if !errors.Is(err, domain.ErrNotFound) || domain.MessageOf(err, "") != domain.MsgOrderNotFound {
		t.Fatalf("want NotFound(%q), got %v", domain.MsgOrderNotFound, err)
	}
}

func TestGetOrder_CacheMiss_FetchAndCache(t *testing.T) {
	d := newOrderDeps(t)
	cache := mocks.NewMockCache(gomock.NewController(t))
	detail := &domain.OrderDetail{ID: 5, CustomerName: "Food Eka", TotalProduct: 1}

	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), "orders:detail:5").Return(nil, false, nil),
		d.query.EXPECT().Detail(gomock.Any(), int64(5)).Return(detail, nil),
		cache.EXPECT().Set(gomock.Any(), "orders:detail:5", gomock.Any(), time.Hour).Return(nil),
	)

	got, err := d.service(cache).GetOrder(context.Background(), 5)
	if err != nil || got.CustomerName != "Food Eka" {
		t.Fatalf("unexpected result err=%v detail=%+v", err, got)
	}
}

func TestCreateOrder_DuplicateProducts_NoStoreAccess(t *testing.T) {
	d := newOrderDeps(t)
	cache := mocks.NewMockCache(gomock.NewController(t))

	d.customers.EXPECT().Exists(gomock.Any(), gomock.Any()).Times(0)
	d.catalog.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Times(0)
	d.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := d.service(cache).CreateOrder(context.Background(), domain.CreateOrderInput{
		CustomerID: 1,
		Products:   []domain.LineItemInput{{ProductID: 5, Qty: 2}, {ProductID: 5, Qty: 1}},
	})
	if !errors.Is(err, domain.ErrInvalidInput) || domain.MessageOf(err, "") != "Duplicate product IDs are not allowed" {
		t.Fatalf("want duplicate products error, got %v", err)
	}
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	d := newOrderDeps(t)

	d.customers.EXPECT().Exists(gomock.Any(), int64(42)).Return(false, nil)
	d.catalog.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Times(0)

	_, err := d.service(nil).CreateOrder(context.Background(), domain.CreateOrderInput{
		CustomerID: 42,
		Products:   []domain.LineItemInput{{ProductID: 1, Qty: 1}},
	})
	if !errors.Is(err, domain.ErrNotFound) || domain.MessageOf(err, "") != domain.MsgCustomerNotFound {
		t.Fatalf("want customer NotFound, got %v", err)
	}
}

func TestCreateOrder_UnknownProducts_NothingWritten(t *testing.T) {
	d := newOrderDeps(t)

	d.customers.EXPECT().Exists(gomock.Any(), int64(1)).Return(true, nil)
	d.catalog.EXPECT().FindByIDs(gomock.Any(), []int64{1, 2}).
		Return([]domain.Product{{ID: 1, Price: 100}}, nil)
	d.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := d.service(nil).CreateOrder(context.Background(), domain.CreateOrderInput{
		CustomerID: 1,
		Products:   []domain.LineItemInput{{ProductID: 1, Qty: 1}, {ProductID: 2, Qty: 1}},
	})
	if !errors.Is(err, domain.ErrInvalidInput) || domain.MessageOf(err, "") != "Some product IDs are invalid" {
		t.Fatalf("want unknown products error, got %v", err)
	}
}

func TestCreateOrder_Success_PricesAndInvalidates(t *testing.T) {
	d := newOrderDeps(t)
	cache := mocks.NewMockCache(gomock.NewController(t))

	wantItems := []domain.OrderItem{{ProductID: 7, Qty: 3, TotalPrice: 3000000}}
	created := &domain.Order{ID: 11, CustomerID: 1, TotalPrice: 3000000}

	gomock.InOrder(
		d.customers.EXPECT().Exists(gomock.Any(), int64(1)).Return(true, nil),
		d.catalog.EXPECT().FindByIDs(gomock.Any(), []int64{7}).
			Return([]domain.Product{{ID: 7, Price: 1000000}}, nil),
		d.repo.EXPECT().Create(gomock.Any(), int64(1), int64(3000000), wantItems).Return(created, nil),
		cache.EXPECT().DeletePrefix(gomock.Any(), usecase.ListCachePrefix).Return(3, nil),
	)
	// на создании ключей деталей ещё нет
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

	got, err := d.service(cache).CreateOrder(context.Background(), domain.CreateOrderInput{
		CustomerID: 1,
		Products:   []domain.LineItemInput{{ProductID: 7, Qty: 3}},
	})
	if err != nil || got.TotalPrice != 3000000 {
		t.Fatalf("unexpected result err=%v order=%+v", err, got)
	}
}

func TestCreateOrder_RepoFailure_NoInvalidation(t *testing.T) {
	d := newOrderDeps(t)
	cache := mocks.NewMockCache(gomock.NewController(t))

	d.customers.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(true, nil)
	d.catalog.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return([]domain.Product{{ID: 1, Price: 10}}, nil)
	d.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("tx aborted"))
	cache.EXPECT().DeletePrefix(gomock.Any(), gomock.Any()).Times(0)

	_, err := d.service(cache).CreateOrder(context.Background(), domain.CreateOrderInput{
		CustomerID: 1,
		Products:   []domain.LineItemInput{{ProductID: 1, Qty: 1}},
	})
	if !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("want ErrInternal, got %v", err)
	}
}

func TestCreateOrder_CacheFailure_DoesNotFailMutation(t *testing.T) {
	d := newOrderDeps(t)
	cache := mocks.NewMockCache(gomock.NewController(t))

	d.customers.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(true, nil)
	d.catalog.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return([]domain.Product{{ID: 1, Price: 10}}, nil)
	d.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.Order{ID: 1}, nil)
	cache.EXPECT().DeletePrefix(gomock.Any(), gomock.Any()).Return(0, errors.New("redis down"))

	if _, err := d.service(cache).CreateOrder(context.Background(), domain.CreateOrderInput{
		CustomerID: 1,
		Products:   []domain.LineItemInput{{ProductID: 1, Qty: 1}},
	}); err != nil {
		t.Fatalf("cache failure must not fail the mutation, got %v", err)
	}
}

func TestUpdateOrder_NotFound(t *testing.T) {
	d := newOrderDeps(t)
	d.repo.EXPECT().Exists(gomock.Any(), int64(9)).Return(false, nil)
	d.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := d.service(nil).UpdateOrder(context.Background(), 9, []domain.LineItemInput{{ProductID: 1, Qty: 1}})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUpdateOrder_InvalidQty(t *testing.T) {
	d := newOrderDeps(t)
	d.repo.EXPECT().Exists(gomock.Any(), gomock.Any()).Times(0)

	_, err := d.service(nil).UpdateOrder(context.Background(), 9, []domain.LineItemInput{{ProductID: 1, Qty: 0}})
	if !errors.Is(err, domain.ErrInvalidInput) || domain.MessageOf(err, "") != domain.MsgInvalidQty {
		t.Fatalf("want invalid qty, got %v", err)
	}
}

func TestUpdateOrder_Success_InvalidatesDetailAndListings(t *testing.T) {
	d := newOrderDeps(t)
	cache := mocks.NewMockCache(gomock.NewController(t))

	gomock.InOrder(
		d.repo.EXPECT().Exists(gomock.Any(), int64(9)).Return(true, nil),
		d.catalog.EXPECT().FindByIDs(gomock.Any(), []int64{2, 3}).
			Return([]domain.Product{{ID: 2, Price: 150}, {ID: 3, Price: 170}}, nil),
		d.repo.EXPECT().Update(gomock.Any(), int64(9), int64(150*2+170), []domain.OrderItem{
			{ProductID: 2, Qty: 2, TotalPrice: 300},
			{ProductID: 3, Qty: 1, TotalPrice: 170},
		}).Return(&domain.Order{ID: 9, TotalPrice: 470}, nil),
		cache.EXPECT().Delete(gomock.Any(), "orders:detail:9").Return(nil),
		cache.EXPECT().DeletePrefix(gomock.Any(), usecase.ListCachePrefix).Return(1, nil),
	)

	got, err := d.service(cache).UpdateOrder(context.Background(), 9,
		[]domain.LineItemInput{{ProductID: 2, Qty: 2}, {ProductID: 3, Qty: 1}})
	if err != nil || got.TotalPrice != 470 {
		t.Fatalf("unexpected result err=%v order=%+v", err, got)
	}
}

func TestDeleteOrder_NotFound(t *testing.T) {
	d := newOrderDeps(t)
	d.repo.EXPECT().Exists(gomock.Any(), int64(3)).Return(false, nil)
	d.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)

	if err := d.service(nil).DeleteOrder(context.Background(), 3); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDeleteOrder_Success(t *testing.T) {
	d := newOrderDeps(t)
	cache := mocks.NewMockCache(gomock.NewController(t))

	gomock.InOrder(
		d.repo.EXPECT().Exists(gomock.Any(), int64(3)).Return(true, nil),
		d.repo.EXPECT().Delete(gomock.Any(), int64(3)).Return(nil),
		cache.EXPECT().Delete(gomock.Any(), "orders:detail:3").Return(nil),
		cache.EXPECT().DeletePrefix(gomock.Any(), usecase.ListCachePrefix).Return(0, nil),
	)

	if err := d.service(cache).DeleteOrder(context.Background(), 3); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestSaveFromMessage_InvalidJSON(t *testing.T) {
	d := newOrderDeps(t)

	err := d.service(nil).SaveFromMessage(context.Background(), []byte("{"))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestSaveFromMessage_Success(t *testing.T) {
	d := newOrderDeps(t)

	d.customers.EXPECT().Exists(gomock.Any(), int64(2)).Return(true, nil)
	d.catalog.EXPECT().FindByIDs(gomock.Any(), []int64{1}).Return([]domain.Product{{ID: 1, Price: 5}}, nil)
	d.repo.EXPECT().Create(gomock.Any(), int64(2), int64(10), gomock.Any()).Return(&domain.Order{ID: 1}, nil)

	raw := []byte(`{"customer_id":2,"products":[{"product_id":1,"qty":2}]}`)
	if err := d.service(nil).SaveFromMessage(context.Background(), raw); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

// С настоящим LRU: закэшированная страница не переживает мутацию.
func TestMutation_DropsCachedListing(t *testing.T) {
	d := newOrderDeps(t)
	svc := d.service(memory.NewLRUCacheTTL(100, time.Hour))
	ctx := context.Background()

	before := []domain.OrderSummary{{ID: 1}}
	after := []domain.OrderSummary{{ID: 2}, {ID: 1}}

	gomock.InOrder(
		d.query.EXPECT().List(gomock.Any(), gomock.Any()).Return(before, int64(1), nil),
		d.query.EXPECT().List(gomock.Any(), gomock.Any()).Return(after, int64(2), nil),
	)
	d.customers.EXPECT().Exists(gomock.Any(), gomock.Any()).Return(true, nil)
	d.catalog.EXPECT().FindByIDs(gomock.Any(), gomock.Any()).Return([]domain.Product{{ID: 1, Price: 1}}, nil)
	d.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.Order{ID: 2}, nil)

	for i := 0; i < 2; i++ { // второй вызов: из кэша
		page, err := svc.ListOrders(ctx, domain.OrderListQuery{})
		if err != nil || page.Meta.Total != 1 {
			t.Fatalf("call %d: unexpected result err=%v page=%+v", i, err, page)
		}
	}

	if _, err := svc.CreateOrder(ctx, domain.CreateOrderInput{
		CustomerID: 1, Products: []domain.LineItemInput{{ProductID: 1, Qty: 1}},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	page, err := svc.ListOrders(ctx, domain.OrderListQuery{})
	if err != nil || page.Meta.Total != 2 || len(page.Orders) != 2 {
		t.Fatalf("listing must reflect the mutation, got err=%v page=%+v", err, page)
	}
}

func TestWarmUpCache_LoadsFirstPageAndDetails(t *testing.T) {
	d := newOrderDeps(t)
	cache := memory.NewLRUCacheTTL(100, time.Hour)
	svc := d.service(cache)

	d.query.EXPECT().List(gomock.Any(), gomock.Any()).
		Return([]domain.OrderSummary{{ID: 3}, {ID: 2}, {ID: 1}}, int64(3), nil)
	d.query.EXPECT().Detail(gomock.Any(), int64(3)).Return(&domain.OrderDetail{ID: 3}, nil)
	d.query.EXPECT().Detail(gomock.Any(), int64(2)).Return(&domain.OrderDetail{ID: 2}, nil)

	if err := svc.WarmUpCache(context.Background(), 2); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cache.Len() != 3 {
		t.Fatalf("want listing + 2 details in cache, got %d entries", cache.Len())
	}
}

func TestWarmUpCache_SkippedWithoutCache(t *testing.T) {
	d := newOrderDeps(t)
	d.query.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

	if err := d.service(nil).WarmUpCache(context.Background(), 10); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
