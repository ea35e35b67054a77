package domain

import "time"

// Сообщения об ошибках заказов.
const (
	MsgOrderNotFound      = "Order doesn't exist"
	MsgCustomerNotFound   = "Customer doesn't exist"
	MsgDuplicateProducts  = "Duplicate product IDs are not allowed"
	MsgEmptyProducts      = "products must be longer than or equal to 1 item"
	MsgInvalidProductID   = "Invalid product ID value is less than 1"
	MsgInvalidQty         = "Invalid qty value is less than 1"
	MsgUnknownProducts    = "Some product IDs are invalid"
	MsgOrderTotalOverflow = "Order total exceeds the supported amount"
	MsgInvalidQuery       = "Invalid query parameters"
	MsgInvalidOrderID     = "Invalid order ID"
)

// LineItemInput: позиция заказа в запросе клиента.
type LineItemInput struct {
	ProductID int64 `json:"product_id"`
	Qty       int64 `json:"qty"`
}

// CreateOrderInput: запрос на создание заказа.
type CreateOrderInput struct {
	CustomerID int64           `json:"customer_id"`
	Products   []LineItemInput `json:"products"`
}

// Order: заголовок заказа. TotalPrice всегда равен сумме TotalPrice позиций.
type Order struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	TotalPrice int64     `json:"total_price"`
	OrderDate  time.Time `json:"order_date"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OrderItem: оценённая позиция заказа (цена зафиксирована на момент заказа).
type OrderItem struct {
	ProductID  int64 `json:"product_id"`
	Qty        int64 `json:"qty"`
	TotalPrice int64 `json:"total_price"`
}

// OrderSummary: строка листинга заказов.
type OrderSummary struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	TotalProduct int       `json:"total_product"`
	TotalPrice   int64     `json:"total_price"`
	OrderDate    time.Time `json:"order_date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OrderDetailItem: позиция заказа с данными товара.
type OrderDetailItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       int64  `json:"price"`
	Qty         int64  `json:"qty"`
	TotalPrice  int64  `json:"total_price"`
}

// OrderDetail: заказ с именем клиента и позициями.
type OrderDetail struct {
	ID           int64             `json:"id"`
	CustomerID   int64             `json:"customer_id"`
	CustomerName string            `json:"customer_name"`
	TotalProduct int               `json:"total_product"`
	TotalPrice   int64             `json:"total_price"`
	OrderDate    time.Time         `json:"order_date"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
	Items        []OrderDetailItem `json:"items"`
}

// OrderPage: страница листинга и метаданные пагинации.
type OrderPage struct {
	Orders []OrderSummary `json:"orders"`
	Meta   PageMeta       `json:"meta"`
}
