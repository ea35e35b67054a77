package ports

import "context"

// Logger: логгер прикладных слоёв. ctx несёт request_id, trace_id и user_id для каждой строки.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
