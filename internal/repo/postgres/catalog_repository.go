package postgres

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/internal/ports"
	"gorm.io/gorm"
)

var (
	_ ports.CustomerRepository = (*CustomerRepository)(nil)
	_ ports.ProductRepository  = (*ProductRepository)(nil)
)

// CustomerRepository: клиенты на gorm; Exists служит проверкой владельца заказа.
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository { return &CustomerRepository{db: db} }

func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	var records []customerRecord
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	customers := make([]domain.Customer, 0, len(records))
	for i := range records {
		customers = append(customers, records[i].toDomain())
	}
	return customers, nil
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	record := customerRecord{Name: customer.Name}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("create customer: %w", err)
	}
	*customer = record.toDomain()
	return nil
}

func (r *CustomerRepository) Exists(ctx context.Context, customerID int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&customerRecord{}).Where("id = ?", customerID).Limit(1).Count(&n).Error; err != nil {
		return false, fmt.Errorf("customer exists: %w", err)
	}
	return n > 0, nil
}

// ProductRepository: товары на gorm; FindByIDs: каталог цен для позиций заказа.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{db: db} }

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return productsToDomain(records), nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	record := productRecord{Name: product.Name, Price: product.Price}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	*product = record.toDomain()
	return nil
}

// FindByIDs: найденные товары; отсутствующие id просто не попадают в результат.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	return productsToDomain(records), nil
}

func productsToDomain(records []productRecord) []domain.Product {
	products := make([]domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products
}
