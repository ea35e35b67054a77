package ports

import (
	"context"

	"github.com/Gunvolt24/rapid_express/internal/domain"
)

// ProductCatalog: пакетный поиск товаров по id (для цен позиций).
type ProductCatalog interface {
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error)
}

// CustomerLookup: проверка существования клиента.
type CustomerLookup interface {
	Exists(ctx context.Context, customerID int64) (bool, error)
}

type CustomerRepository interface {
	CustomerLookup
	List(ctx context.Context) ([]domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) error
}

type ProductRepository interface {
	ProductCatalog
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
}
