package ports

import "context"

// MessageConsumer: фоновый приём заказов из брокера.
// Run блокируется до отмены ctx; Close можно вызывать повторно.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Close() error
}
