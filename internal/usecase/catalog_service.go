package usecase

import (
	"context"
	"strings"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/internal/ports"
)

var (
	_ ports.CustomerService = (*CustomerService)(nil)
	_ ports.ProductService  = (*ProductService)(nil)
)

const (
	MsgCustomerNameRequired = "name should not be empty"
	MsgProductNameRequired  = "name should not be empty"
)

type CustomerService struct {
	repo ports.CustomerRepository
	log  ports.Logger
}

func NewCustomerService(repo ports.CustomerRepository, log ports.Logger) *CustomerService {
	return &CustomerService{repo: repo, log: log}
}

// ListCustomers: по имени, по возрастанию.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		s.log.Errorf(ctx, "list customers: %v", err)
		return nil, domain.Internal("Failed to retrieve customers", err)
	}
	return customers, nil
}

func (s *CustomerService) CreateCustomer(ctx context.Context, name string) (*domain.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.InvalidInput(MsgCustomerNameRequired)
	}
	customer := &domain.Customer{Name: name}
	if err := s.repo.Create(ctx, customer); err != nil {
		s.log.Errorf(ctx, "create customer: %v", err)
		return nil, domain.Internal("Failed to create customer", err)
	}
	return customer, nil
}

type ProductService struct {
	repo ports.ProductRepository
	log  ports.Logger
}

func NewProductService(repo ports.ProductRepository, log ports.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.log.Errorf(ctx, "list products: %v", err)
		return nil, domain.Internal("Failed to retrieve products", err)
	}
	return products, nil
}

// CreateProduct: price уже в минимальных единицах валюты (см. domain.ParsePrice).
func (s *ProductService) CreateProduct(ctx context.Context, name string, price int64) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.InvalidInput(MsgProductNameRequired)
	}
	if price <= 0 {
		return nil, domain.InvalidInput(domain.MsgInvalidPrice)
	}
	product := &domain.Product{Name: name, Price: price}
	if err := s.repo.Create(ctx, product); err != nil {
		s.log.Errorf(ctx, "create product: %v", err)
		return nil, domain.Internal("Failed to create product", err)
	}
	return product, nil
}
