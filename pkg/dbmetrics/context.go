package dbmetrics

import "context"

type executorCtxKey struct{}

// WithExecutor кладет executor (обычно активную транзакцию) в контекст
// Репозитории достают его через GetExecutor и тем самым участвуют в транзакции
func WithExecutor(ctx context.Context, executor DBExecutor) context.Context {
	return context.WithValue(ctx, executorCtxKey{}, executor)
}

// GetExecutor возвращает executor из контекста, либо fallback, если в контексте
// нет активной транзакции
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if executor, ok := ctx.Value(executorCtxKey{}).(DBExecutor); ok {
		return executor
	}
	return fallback
}
