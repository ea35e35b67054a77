package ports

import (
	"context"

	"github.com/Gunvolt24/rapid_express/internal/domain"
)

// OrderRepository: атомарная запись заказа вместе с позициями.
type OrderRepository interface {
	Create(ctx context.Context, customerID, total int64, items []domain.OrderItem) (*domain.Order, error)
	Update(ctx context.Context, orderID, total int64, items []domain.OrderItem) (*domain.Order, error)
	Delete(ctx context.Context, orderID int64) error
	Exists(ctx context.Context, orderID int64) (bool, error)
}

// OrderQuery: чтение заказов: листинг с фильтром/сортировкой/пагинацией и детали.
type OrderQuery interface {
	// List: страница заказов и общее число строк под тем же фильтром.
	List(ctx context.Context, q domain.OrderListQuery) ([]domain.OrderSummary, int64, error)
	// Detail: (nil, nil), если заказа нет.
	Detail(ctx context.Context, orderID int64) (*domain.OrderDetail, error)
}
