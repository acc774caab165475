package logger

import (
	"context"

	"go.uber.org/zap"
)

// ctxKey is unexported so only this package can store the logger.
type ctxKey struct{}

// ContextWithLogger returns a context carrying the logger. The HTTP
// middleware stores a request-scoped logger with the request id bound.
func ContextWithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the context's logger, or a nop logger when the
// context carries none.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
