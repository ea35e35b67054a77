package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/rapid_express/config"
	"github.com/Gunvolt24/rapid_express/internal/auth"
	"github.com/Gunvolt24/rapid_express/internal/kafka"
	"github.com/Gunvolt24/rapid_express/internal/ports"
	"github.com/Gunvolt24/rapid_express/internal/repo/postgres"
	rest "github.com/Gunvolt24/rapid_express/internal/transport/http"
	"github.com/Gunvolt24/rapid_express/internal/usecase"
	"github.com/Gunvolt24/rapid_express/pkg/logger"
	"github.com/Gunvolt24/rapid_express/pkg/metrics"
	"github.com/Gunvolt24/rapid_express/pkg/telemetry"
	"github.com/Gunvolt24/rapid_express/pkg/validate"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const defaultGracefulTimeout = 5 * time.Second

// App: собранное приложение: HTTP API, отдельный порт метрик и (опционально) приём заказов из Kafka.
type App struct {
	Logger          ports.Logger
	HTTPServer      *http.Server
	MetricsServer   *http.Server          // nil: метрики только на /metrics основного роутера
	KafkaConsumer   ports.MessageConsumer // nil: приём из Kafka выключен
	gracefulTimeout time.Duration
}

// Cleanup: освобождение ресурсов после Run.
type Cleanup func()

// applyGinMode: режим Gin по строке; неизвестное значение → debug и предупреждение.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap: собирает зависимости и возвращает приложение и функцию очистки.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	logg, syncLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}
	// closers выполняются в обратном порядке
	var closers []func()
	closers = append(closers, func() { _ = syncLogger() })
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*App, Cleanup, error) {
		cleanup()
		return nil, func() {}, err
	}

	metrics.MustRegister()

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, pool.Close)

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			return fail(err)
		}
		logg.Infof(ctx, "migrations applied")
	}

	db, err := postgres.OpenGorm(pool)
	if err != nil {
		return fail(err)
	}

	shutdownTrace, err := telemetry.Setup(ctx, telemetry.Options{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		// без трейсинга сервис работоспособен
		logg.Warnf(ctx, "failed to setup tracing: %v", err)
		shutdownTrace = func(context.Context) error { return nil }
	} else if cfg.Tracing.Enabled {
		logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
			cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
	}
	closers = append(closers, func() {
		if err := shutdownTrace(context.Background()); err != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", err)
		}
	})

	cache, closeCache, err := newCache(ctx, cfg, logg)
	if err != nil {
		return fail(err)
	}
	closers = append(closers, func() {
		if err := closeCache(); err != nil {
			logg.Warnf(ctx, "cache close: %v", err)
		}
	})

	// Доменный слой.
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	users := postgres.NewUserRepository(db)
	customers := postgres.NewCustomerRepository(db)
	products := postgres.NewProductRepository(db)

	orderService := usecase.NewOrderService(
		postgres.NewOrderRepository(pool),
		postgres.NewOrderQuery(pool),
		products,
		customers,
		validate.NewOrderValidator(),
		cache,
		cfg.Cache.TTL,
		logg,
	)

	if n := cfg.Cache.WarmUpN; n > 0 {
		if err := orderService.WarmUpCache(ctx, n); err != nil {
			logg.Warnf(ctx, "warm-up cache failed: %v", err)
		}
	}

	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	handler := rest.NewHandler(rest.Services{
		Orders:    orderService,
		Auth:      usecase.NewAuthService(users, hasher, tokens, logg),
		Users:     usecase.NewUserService(users, hasher, logg),
		Customers: usecase.NewCustomerService(customers, logg),
		Products:  usecase.NewProductService(products, logg),
	}, logg, cfg.HTTP.HandlerTimeout).WithSecureCookie(cfg.HTTP.SecureCookie)

	app := &App{
		Logger: logg,
		HTTPServer: &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           rest.NewRouter(handler, otelServiceName),
			ReadTimeout:       cfg.HTTP.ReadTimeout,
			WriteTimeout:      cfg.HTTP.WriteTimeout,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
			IdleTimeout:       cfg.HTTP.IdleTimeout,
		},
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	if addr := cfg.Metrics.Addr; addr != "" && addr != cfg.HTTP.Addr {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		app.MetricsServer = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout}
	}

	if cfg.Kafka.Enabled {
		consumer := kafka.NewConsumer(kafka.Config{
			Brokers:        cfg.Kafka.Brokers,
			Topic:          cfg.Kafka.Topic,
			GroupID:        cfg.Kafka.GroupID,
			StartOffset:    cfg.Kafka.StartOffset,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
		}, orderService, logg)
		app.KafkaConsumer = consumer
		closers = append(closers, func() {
			if err := consumer.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		})
	}

	return app, cleanup, nil
}

// Run: запускает компоненты и ждёт отмены ctx или первой фатальной ошибки;
// затем останавливает всё с ограничением по времени.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		return serve(a.HTTPServer)
	})
	if a.MetricsServer != nil {
		g.Go(func() error {
			a.Logger.Infof(ctx, "metrics server starting (addr=%s)", a.MetricsServer.Addr)
			return serve(a.MetricsServer)
		})
	}
	if a.KafkaConsumer != nil {
		g.Go(func() error {
			a.Logger.Infof(ctx, "kafka consumer starting")
			if err := a.KafkaConsumer.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("kafka consumer: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
		a.shutdown(ctx)
		return nil
	})

	err := g.Wait()
	if err != nil {
		a.Logger.Errorf(ctx, "service stopped with error: %v", err)
		return err
	}
	a.Logger.Infof(ctx, "service stopped")
	return nil
}

func (a *App) shutdown(ctx context.Context) {
	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = defaultGracefulTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	for _, srv := range []*http.Server{a.HTTPServer, a.MetricsServer} {
		if srv == nil {
			continue
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "server %s shutdown failed: %v", srv.Addr, err)
		}
	}
	if a.KafkaConsumer != nil {
		if err := a.KafkaConsumer.Close(); err != nil {
			a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
		}
	}
}

// serve: ListenAndServe; штатная остановка через Shutdown ошибкой не считается.
func serve(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	return nil
}
