package domain

import "math"

// PriceLines: считает стоимость каждой позиции (price * qty) и итог заказа.
// Арифметика только целочисленная. Каждый ProductID должен присутствовать в prices.
func PriceLines(lines []LineItemInput, prices map[int64]int64) ([]OrderItem, int64, error) {
	items := make([]OrderItem, 0, len(lines))
	var total int64
	for _, line := range lines {
		price, ok := prices[line.ProductID]
		if !ok {
			return nil, 0, InvalidInput(MsgUnknownProducts)
		}
		if price != 0 && line.Qty > math.MaxInt64/price {
			return nil, 0, InvalidInput(MsgOrderTotalOverflow)
		}
		lineTotal := price * line.Qty
		if total > math.MaxInt64-lineTotal {
			return nil, 0, InvalidInput(MsgOrderTotalOverflow)
		}
		total += lineTotal
		items = append(items, OrderItem{ProductID: line.ProductID, Qty: line.Qty, TotalPrice: lineTotal})
	}
	return items, total, nil
}

// PriceIndex: индекс цен по id товара.
func PriceIndex(products []Product) map[int64]int64 {
	idx := make(map[int64]int64, len(products))
	for _, p := range products {
		idx[p.ID] = p.Price
	}
	return idx
}
