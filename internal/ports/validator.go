package ports

import (
	"context"

	"github.com/Gunvolt24/rapid_express/internal/domain"
)

// OrderValidator: проверки позиций заказа, не требующие обращения к хранилищу.
type OrderValidator interface {
	Validate(ctx context.Context, lines []domain.LineItemInput) error
}
