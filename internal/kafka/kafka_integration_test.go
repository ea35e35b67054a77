//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/rapid_express/internal/cache/memory"
	"github.com/Gunvolt24/rapid_express/internal/domain"
	ikafka "github.com/Gunvolt24/rapid_express/internal/kafka"
	pgrepo "github.com/Gunvolt24/rapid_express/internal/repo/postgres"
	"github.com/Gunvolt24/rapid_express/internal/testutil"
	"github.com/Gunvolt24/rapid_express/internal/usecase"
	"github.com/Gunvolt24/rapid_express/pkg/logger"
	"github.com/Gunvolt24/rapid_express/pkg/validate"
)

// Postgres и redpanda поднимаются один раз на пакет.
var (
	pool    *pgxpool.Pool
	brokers []string
	svc     *usecase.OrderService
	query   *pgrepo.OrderQuery
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pg, stopPG, err := testutil.StartPostgresTC(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start postgres: %v\n", err)
		return 1
	}
	defer func() { _ = stopPG(context.Background()) }()

	if err := pgrepo.Migrate(ctx, pg.Pool); err != nil {
		fmt.Fprintf(os.Stderr, "migrations: %v\n", err)
		return 1
	}

	kf, stopKF, err := testutil.StartKafkaTC(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start redpanda: %v\n", err)
		return 1
	}
	defer func() { _ = stopKF(context.Background()) }()

	logg, cleanup, err := logger.NewZapLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = cleanup() }()

	db, err := pgrepo.OpenGorm(pg.Pool)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gorm: %v\n", err)
		return 1
	}

	pool, brokers = pg.Pool, kf.Brokers
	query = pgrepo.NewOrderQuery(pool)
	svc = usecase.NewOrderService(
		pgrepo.NewOrderRepository(pool), query,
		pgrepo.NewProductRepository(db), pgrepo.NewCustomerRepository(db),
		validate.NewOrderValidator(), memory.NewLRUCacheTTL(100, time.Minute), time.Minute, logg,
	)
	return m.Run()
}

// startConsumer: консьюмер на уникальном топике; остановится вместе с тестом.
func startConsumer(t *testing.T, ctx context.Context) string {
	t.Helper()

	topic, group := testutil.UniqueTopicAndGroup("orders-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, brokers[0], topic))

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	consumer := ikafka.NewConsumer(ikafka.Config{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        group,
		StartOffset:    "first",
		ProcessTimeout: 3 * time.Second,
		RetryInitial:   200 * time.Millisecond,
		RetryMax:       2 * time.Second,
	}, svc, logg)

	runCtx, cancelRun := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() { _ = consumer.Run(runCtx); close(done) }()
	t.Cleanup(func() {
		cancelRun()
		<-done
		_ = consumer.Close()
	})
	return topic
}

func writeMsg(t *testing.T, ctx context.Context, topic string, value []byte) {
	t.Helper()
	require.NoError(t, testutil.Publish(ctx, brokers, topic, value))
}

func orderJSON(t *testing.T, in domain.CreateOrderInput) []byte {
	t.Helper()
	raw, err := json.Marshal(in)
	require.NoError(t, err)
	return raw
}

// waitOrders: ждёт, пока у клиента появится want заказов.
func waitOrders(t *testing.T, ctx context.Context, customerName string, want int64) []domain.OrderSummary {
	t.Helper()
	deadline := time.Now().Add(20 * time.Second)
	for {
		rows, total, err := query.List(ctx, domain.OrderListQuery{Customer: customerName}.WithDefaults())
		require.NoError(t, err)
		if total >= want {
			require.Equal(t, want, total)
			return rows
		}
		if time.Now().After(deadline) {
			t.Fatalf("customer %q: want %d orders, got %d", customerName, want, total)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

func TestKafka_ValidMessage_CreatesOrder_TC(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	customerID, name, err := testutil.InsertCustomer(ctx, pool, "Kafka Buyer")
	require.NoError(t, err)
	productID, err := testutil.InsertProduct(ctx, pool, 2500)
	require.NoError(t, err)

	topic := startConsumer(t, ctx)
	writeMsg(t, ctx, topic, orderJSON(t, testutil.MakeOrderInput(customerID, testutil.WithLine(productID, 4))))

	rows := waitOrders(t, ctx, name, 1)
	require.Equal(t, int64(10000), rows[0].TotalPrice)
	require.Equal(t, 1, rows[0].TotalProduct)
}

// Мусор и ссылки на несуществующие сущности коммитятся и не блокируют следующие сообщения.
func TestKafka_RejectedMessages_Skipped_TC(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	customerID, name, err := testutil.InsertCustomer(ctx, pool, "Kafka Skip")
	require.NoError(t, err)
	productID, err := testutil.InsertProduct(ctx, pool, 1000)
	require.NoError(t, err)

	topic := startConsumer(t, ctx)

	writeMsg(t, ctx, topic, []byte("not-a-json"))
	writeMsg(t, ctx, topic, orderJSON(t, testutil.MakeOrderInput(customerID, testutil.WithLine(productID, 1), testutil.WithLine(productID, 2))))
	writeMsg(t, ctx, topic, orderJSON(t, testutil.MakeOrderInput(customerID, testutil.WithLine(999999, 1))))
	writeMsg(t, ctx, topic, orderJSON(t, testutil.MakeOrderInput(999999, testutil.WithLine(productID, 1))))
	writeMsg(t, ctx, topic, orderJSON(t, testutil.MakeOrderInput(customerID, testutil.WithLine(productID, 3))))

	rows := waitOrders(t, ctx, name, 1)
	require.Equal(t, int64(3000), rows[0].TotalPrice)
}
