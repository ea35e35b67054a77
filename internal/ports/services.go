package ports

import (
	"context"

	"github.com/Gunvolt24/rapid_express/internal/domain"
)

// OrderService: сценарии работы с заказами для транспортного слоя.
type OrderService interface {
	ListOrders(ctx context.Context, q domain.OrderListQuery) (*domain.OrderPage, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.OrderDetail, error)
	CreateOrder(ctx context.Context, in domain.CreateOrderInput) (*domain.Order, error)
	UpdateOrder(ctx context.Context, orderID int64, lines []domain.LineItemInput) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error
}

// AuthService: регистрация, вход и проверка токена.
type AuthService interface {
	Signup(ctx context.Context, in domain.SignupInput) (*domain.User, *domain.AuthToken, error)
	Login(ctx context.Context, email, password string) (*domain.User, *domain.AuthToken, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, in domain.NewUser) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	// DeleteUser: actorID не может удалить сам себя.
	DeleteUser(ctx context.Context, actorID, id int64) error
}

type CustomerService interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, name string) (*domain.Customer, error)
}

type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, name string, price int64) (*domain.Product, error)
}
