// Package contextutil carries request-scoped values (request id, acting user
// and logger) from the middleware down to the services.
package contextutil

import (
	"context"

	"go.uber.org/zap"
)

// key is unexported so no other package can read or shadow these values.
type key[T any] struct{ name string }

func (k key[T]) with(ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, k, v)
}

func (k key[T]) get(ctx context.Context) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	v, ok := ctx.Value(k).(T)
	return v, ok
}

var (
	requestIDKey = key[string]{"request_id"}
	userIDKey    = key[string]{"user_id"}
	loggerKey    = key[*zap.Logger]{"logger"}
)

func WithRequestID(ctx context.Context, rid string) context.Context {
	return requestIDKey.with(ctx, rid)
}

func GetRequestID(ctx context.Context) string {
	rid, _ := requestIDKey.get(ctx)
	return rid
}

// WithUserID records the authenticated user; audit events use it as the actor.
func WithUserID(ctx context.Context, uid string) context.Context {
	return userIDKey.with(ctx, uid)
}

func GetUserID(ctx context.Context) string {
	uid, _ := userIDKey.get(ctx)
	return uid
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return loggerKey.with(ctx, logger)
}

// GetLogger returns the request logger, else fallback, else a no-op logger.
func GetLogger(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := loggerKey.get(ctx); ok && l != nil {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return zap.NewNop()
}
