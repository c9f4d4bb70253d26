package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	fieldsKey
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	return WithFields(ctx, zap.String("request_id", requestID))
}

func RequestIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// WithFields attaches fields that every FromCtx logger on this context (and
// its children) will carry.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	if len(fields) == 0 {
		return ctx
	}
	existing, _ := ctx.Value(fieldsKey).([]zap.Field)
	merged := make([]zap.Field, 0, len(existing)+len(fields))
	merged = append(merged, existing...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, fieldsKey, merged)
}

// FromCtx returns the process logger tagged with the request-scoped fields.
func FromCtx(ctx context.Context) *zap.Logger {
	fields, _ := ctx.Value(fieldsKey).([]zap.Field)
	if len(fields) == 0 {
		return L()
	}
	return L().With(fields...)
}
