package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Gunvolt24/rapid_express/internal/ports"
	"github.com/Gunvolt24/rapid_express/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

var _ ports.MessageConsumer = (*Consumer)(nil)

// reader: нужная часть kafka.Reader (подменяется моком в тестах).
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// orderIntake: создание заказа из тела сообщения (тот же путь, что и POST /orders).
type orderIntake interface {
	SaveFromMessage(ctx context.Context, raw []byte) error
}

// Consumer: приём заказов из топика с at-least-once доставкой.
type Consumer struct {
	reader         reader
	intake         orderIntake
	log            ports.Logger
	processTimeout time.Duration

	fetchRetry *backoff // ошибки брокера
	saveRetry  *backoff // временные ошибки обработки

	closeOnce sync.Once
}

func NewConsumer(cfg Config, intake orderIntake, log ports.Logger) *Consumer {
	cfg = cfg.withDefaults()
	return newConsumer(kafka.NewReader(cfg.ReaderConfig()), intake, log, cfg,
		rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newConsumer(r reader, intake orderIntake, log ports.Logger, cfg Config, rnd *rand.Rand) *Consumer {
	cfg = cfg.withDefaults()
	return &Consumer{
		reader:         r,
		intake:         intake,
		log:            log,
		processTimeout: cfg.ProcessTimeout,
		fetchRetry:     newBackoff(cfg.RetryInitial, cfg.RetryMax, rnd),
		saveRetry:      newBackoff(cfg.RetryInitial, cfg.RetryMax, rnd),
	}
}

// Run: читает сообщения до отмены ctx.
// Оффсет коммитится после успешного создания заказа или если сообщение отклонено как некорректное.
// При временной ошибке оффсет не коммитится; при остановке сообщение будет перечитано после рестарта.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "order intake started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			delay := c.fetchRetry.next()
			c.log.Warnf(ctx, "fetch failed: %v (retry in %s)", err, delay)
			if !sleepCtx(ctx, delay) {
				return ctx.Err()
			}
			continue
		}
		c.fetchRetry.reset()
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		// временная ошибка: повторяем то же сообщение, пока не получится или не отменят ctx
		for c.process(ctx, rc.Topic, &msg) == retryLater {
			if !sleepCtx(ctx, c.saveRetry.next()) {
				return ctx.Err()
			}
		}
		c.saveRetry.reset()
		c.commit(ctx, &msg)
	}
}

// Close: закрывает reader; повторные вызовы ничего не делают.
func (c *Consumer) Close() (err error) {
	c.closeOnce.Do(func() { err = c.reader.Close() })
	return err
}
