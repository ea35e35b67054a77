package kafka

import (
	"context"

	"github.com/Gunvolt24/rapid_express/internal/domain"
	"github.com/Gunvolt24/rapid_express/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

type verdict int

const (
	commitOffset verdict = iota
	retryLater
)

// process: создать заказ из сообщения и решить судьбу оффсета.
// Клиентские ошибки (невалидный JSON, неизвестный клиент или товар) повтором не лечатся.
func (c *Consumer) process(ctx context.Context, topic string, msg *kafka.Message) verdict {
	pctx, cancel := context.WithTimeout(ctx, c.processTimeout)
	err := c.intake.SaveFromMessage(pctx, msg.Value)
	cancel()

	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return commitOffset
	case domain.IsClientError(err):
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "order message rejected partition=%d offset=%d: %s (skipped)",
			msg.Partition, msg.Offset, domain.MessageOf(err, err.Error()))
		return commitOffset
	default:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "order message failed partition=%d offset=%d: %v (will retry)",
			msg.Partition, msg.Offset, err)
		return retryLater
	}
}

func (c *Consumer) commit(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, err)
	}
}
