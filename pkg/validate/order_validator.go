package validate

import (
	"context"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/internal/ports"
)

// Проверка, что OrderValidator удовлетворяет интерфейсу OrderValidator.
var _ ports.OrderValidator = (*OrderValidator)(nil)

// MsgInvalidCustomerID: customer_id меньше 1.
const MsgInvalidCustomerID = "Invalid customer ID value is less than 1"

// OrderValidator: проверки позиций заказа без обращения к хранилищу.
// Все ошибки имеют категорию domain.ErrInvalidInput.
type OrderValidator struct{}

// NewOrderValidator: конструктор OrderValidator.
func NewOrderValidator() *OrderValidator { return &OrderValidator{} }

// Validate: дубликаты product_id проверяются первыми, затем пустой список и значения id/qty.
func (v *OrderValidator) Validate(_ context.Context, lines []domain.LineItemInput) error {
	if hasDuplicates(lines) {
		return domain.InvalidInput(domain.MsgDuplicateProducts)
	}
	if len(lines) == 0 {
		return domain.InvalidInput(domain.MsgEmptyProducts)
	}
	for _, line := range lines {
		if line.ProductID < 1 {
			return domain.InvalidInput(domain.MsgInvalidProductID)
		}
		if line.Qty < 1 {
			return domain.InvalidInput(domain.MsgInvalidQty)
		}
	}
	return nil
}

// ValidateCreate: Validate + проверка customer_id.
func (v *OrderValidator) ValidateCreate(ctx context.Context, in *domain.CreateOrderInput) error {
	if in.CustomerID < 1 {
		return domain.InvalidInput(MsgInvalidCustomerID)
	}
	return v.Validate(ctx, in.Products)
}

// DistinctProductIDs: id товаров без повторов в порядке первого появления.
func DistinctProductIDs(lines []domain.LineItemInput) []int64 {
	seen := make(map[int64]struct{}, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}

func hasDuplicates(lines []domain.LineItemInput) bool {
	return len(DistinctProductIDs(lines)) != len(lines)
}
