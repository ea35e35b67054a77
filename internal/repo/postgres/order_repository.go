package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

const pgForeignKeyViolation = "23503"

// OrderRepository: транзакционная запись заказов на Postgres (pgxpool).
// Заголовок и позиции пишутся в одной транзакции; частичный заказ не виден читателям.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository - конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository { return &OrderRepository{pool: pool} }

// Create: вставляет заголовок и все позиции заказа.
func (r *OrderRepository) Create(ctx context.Context, customerID, total int64, items []domain.OrderItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.InvalidInput(domain.MsgEmptyProducts)
	}

	var order *domain.Order
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		order, err = scanOrder(tx.QueryRow(ctx, `
			INSERT INTO orders (customer_id, total_price)
			VALUES ($1, $2)
			RETURNING id, customer_id, total_price, order_date, created_at, updated_at
		`, customerID, total))
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.NotFound(domain.MsgCustomerNotFound)
			}
			return fmt.Errorf("insert order: %w", err)
		}
		return copyItems(ctx, tx, order.ID, items)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Update: новый итог и полная замена позиций (старые удаляются целиком).
func (r *OrderRepository) Update(ctx context.Context, orderID, total int64, items []domain.OrderItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, domain.InvalidInput(domain.MsgEmptyProducts)
	}

	var order *domain.Order
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		order, err = scanOrder(tx.QueryRow(ctx, `
			UPDATE orders SET total_price = $2, updated_at = now()
			WHERE id = $1
			RETURNING id, customer_id, total_price, order_date, created_at, updated_at
		`, orderID, total))
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NotFound(domain.MsgOrderNotFound)
		}
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		if _, err = tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		return copyItems(ctx, tx, orderID, items)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Delete: удаляет позиции и затем заголовок заказа.
func (r *OrderRepository) Delete(ctx context.Context, orderID int64) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
			return fmt.Errorf("delete items: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
		if err != nil {
			return fmt.Errorf("delete order: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.NotFound(domain.MsgOrderNotFound)
		}
		return nil
	})
}

// Exists: есть ли заказ с таким id.
func (r *OrderRepository) Exists(ctx context.Context, orderID int64) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("order exists: %w", err)
	}
	return exists, nil
}

// inTx: запись в транзакции с уровнем изоляции по умолчанию.
func (r *OrderRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return runTx(ctx, r.pool, pgx.TxOptions{}, fn)
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(&o.ID, &o.CustomerID, &o.TotalPrice, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

// copyItems: вставка позиций через COPY (CopyFromRows); быстрее, чем INSERT в цикле.
func copyItems(ctx context.Context, tx pgx.Tx, orderID int64, items []domain.OrderItem) error {
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, []any{orderID, item.ProductID, item.Qty, item.TotalPrice})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"order_items"},
		[]string{"order_id", "product_id", "qty", "total_price"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.InvalidInput(domain.MsgUnknownProducts)
		}
		return fmt.Errorf("copy items: %w", err)
	}
	return nil
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
