package domain

import (
	"github.com/shopspring/decimal"
)

const (
	MsgInvalidPrice = "price must be a positive number with at most 2 decimal places"
	priceMaxScale   = 2
)

// ParsePrice: разбирает цену товара: положительное число, не более двух знаков после запятой.
// Хранилище держит цену целым числом, дробная часть отбрасывается.
func ParsePrice(raw string) (int64, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, InvalidInput(MsgInvalidPrice)
	}
	if -d.Exponent() > priceMaxScale && !d.Equal(d.Round(priceMaxScale)) {
		return 0, InvalidInput(MsgInvalidPrice)
	}
	whole := d.Truncate(0)
	if !whole.IsPositive() || whole.GreaterThan(decimal.NewFromInt(1<<53)) {
		return 0, InvalidInput(MsgInvalidPrice)
	}
	return whole.IntPart(), nil
}
