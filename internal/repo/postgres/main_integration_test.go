//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	pgrepo "github.com/Gunvolt24/rapid_express/internal/repo/postgres"
	"github.com/Gunvolt24/rapid_express/internal/testutil"
)

// Один контейнер на пакет: миграции goose + сид применяются один раз.
var (
	testPool *pgxpool.Pool
	testGorm *gorm.DB
)

func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, stopPG, err := testutil.StartPostgresTC(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start postgres: %v\n", err)
		return 1
	}
	defer func() { _ = stopPG(context.Background()) }()

	testPool = pg.Pool
	if err := pgrepo.Migrate(ctx, testPool); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		return 1
	}
	if testGorm, err = pgrepo.OpenGorm(testPool); err != nil {
		fmt.Fprintf(os.Stderr, "gorm: %v\n", err)
		return 1
	}
	return m.Run()
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}
