//go:build integration

package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// InsertCustomer: клиент с уникальным именем вида "<prefix> <suffix>".
func InsertCustomer(ctx context.Context, pool *pgxpool.Pool, prefix string) (int64, string, error) {
	name := prefix + " " + UniqSuffix()
	var id int64
	if err := pool.QueryRow(ctx,
		`INSERT INTO customers (name) VALUES ($1) RETURNING id`, name,
	).Scan(&id); err != nil {
		return 0, "", fmt.Errorf("insert customer: %w", err)
	}
	return id, name, nil
}

// InsertProduct: товар с заданной ценой.
func InsertProduct(ctx context.Context, pool *pgxpool.Pool, price int64) (int64, error) {
	var id int64
	if err := pool.QueryRow(ctx,
		`INSERT INTO products (name, price) VALUES ($1, $2) RETURNING id`, "Product "+UniqSuffix(), price,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return id, nil
}

// MakeOrderInput: запрос на создание заказа с позициями из опций.
func MakeOrderInput(customerID int64, opts ...func(*domain.CreateOrderInput)) domain.CreateOrderInput {
	in := domain.CreateOrderInput{CustomerID: customerID}
	for _, fn := range opts {
		fn(&in)
	}
	return in
}

func WithLine(productID, qty int64) func(*domain.CreateOrderInput) {
	return func(in *domain.CreateOrderInput) {
		in.Products = append(in.Products, domain.LineItemInput{ProductID: productID, Qty: qty})
	}
}
