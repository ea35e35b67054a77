package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ports.OrderQuery = (*OrderQuery)(nil)

// sortColumns: белый список сортировки; в SQL подставляются только эти значения.
var sortColumns = map[string]string{
	domain.SortByID:         "o.id",
	domain.SortByTotalPrice: "o.total_price",
	domain.SortByOrderDate:  "o.order_date",
}

// OrderQuery: чтение заказов: листинг и детали.
type OrderQuery struct {
	pool *pgxpool.Pool
}

func NewOrderQuery(pool *pgxpool.Pool) *OrderQuery { return &OrderQuery{pool: pool} }

// List: страница заказов и общее число строк под тем же фильтром.
// Оба запроса читают один снимок (REPEATABLE READ, read-only).
// Фильтр по клиенту: подстрока с учётом регистра.
func (q *OrderQuery) List(ctx context.Context, query domain.OrderListQuery) ([]domain.OrderSummary, int64, error) {
	query = query.WithDefaults()

	column, ok := sortColumns[query.SortBy]
	if !ok {
		return nil, 0, domain.InvalidInput("Invalid sort field")
	}
	direction := "DESC"
	if query.SortOrder == domain.SortAsc {
		direction = "ASC"
	}

	from, to := query.DateBounds()
	where := `
		WHERE ($1 = '' OR c.name LIKE '%' || $1 || '%' ESCAPE '\')
		  AND ($2::timestamptz IS NULL OR o.order_date >= $2)
		  AND ($3::timestamptz IS NULL OR o.order_date <= $3)`
	args := []any{escapeLike(strings.TrimSpace(query.Customer)), from, to}

	var total int64
	orders := make([]domain.OrderSummary, 0, query.Limit)
	err := runTx(ctx, q.pool, snapshotRead, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			SELECT count(*)
			FROM orders o
			JOIN customers c ON c.id = o.customer_id`+where, args...,
		).Scan(&total); err != nil {
			return fmt.Errorf("count orders: %w", err)
		}
		if total == 0 || int64(query.Offset()) >= total {
			return nil
		}

		// column/direction взяты из белого списка выше.
		rows, err := tx.Query(ctx, `
			SELECT o.id, c.name,
				(SELECT count(*) FROM order_items i WHERE i.order_id = o.id),
				o.total_price, o.order_date, o.created_at, o.updated_at
			FROM orders o
			JOIN customers c ON c.id = o.customer_id`+where+`
			ORDER BY `+column+` `+direction+`, o.id `+direction+`
			LIMIT $4 OFFSET $5
		`, append(args, query.Limit, query.Offset())...)
		if err != nil {
			return fmt.Errorf("select orders: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var s domain.OrderSummary
			if err := rows.Scan(&s.ID, &s.CustomerName, &s.TotalProduct, &s.TotalPrice,
				&s.OrderDate, &s.CreatedAt, &s.UpdatedAt); err != nil {
				return fmt.Errorf("scan order: %w", err)
			}
			orders = append(orders, s)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("orders rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Detail: заказ с именем клиента и позициями. Если заказа нет, возвращает (nil, nil).
// Заголовок и позиции читаются из одного снимка: итог всегда совпадает с суммой позиций.
func (q *OrderQuery) Detail(ctx context.Context, orderID int64) (*domain.OrderDetail, error) {
	var detail *domain.OrderDetail
	err := runTx(ctx, q.pool, snapshotRead, func(tx pgx.Tx) error {
		var d domain.OrderDetail
		err := tx.QueryRow(ctx, `
			SELECT o.id, o.customer_id, c.name, o.total_price, o.order_date, o.created_at, o.updated_at
			FROM orders o
			JOIN customers c ON c.id = o.customer_id
			WHERE o.id = $1
		`, orderID).Scan(&d.ID, &d.CustomerID, &d.CustomerName, &d.TotalPrice, &d.OrderDate, &d.CreatedAt, &d.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("select order: %w", err)
		}

		rows, err := tx.Query(ctx, `
			SELECT i.product_id, p.name, p.price, i.qty, i.total_price
			FROM order_items i
			JOIN products p ON p.id = i.product_id
			WHERE i.order_id = $1
			ORDER BY i.id
		`, orderID)
		if err != nil {
			return fmt.Errorf("select items: %w", err)
		}
		defer rows.Close()

		d.Items = make([]domain.OrderDetailItem, 0, 4)
		for rows.Next() {
			var item domain.OrderDetailItem
			if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Price, &item.Qty, &item.TotalPrice); err != nil {
				return fmt.Errorf("scan item: %w", err)
			}
			d.Items = append(d.Items, item)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("items rows: %w", err)
		}
		d.TotalProduct = len(d.Items)
		detail = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// escapeLike: экранирует спецсимволы LIKE, чтобы фильтр искал подстроку буквально.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
