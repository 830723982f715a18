package services

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	operationKey contextKey = "operation"
	requestIDKey contextKey = "request_id"
)

// WithRunID annotates context with the history run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the history run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(runIDKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// WithOperation annotates context with the logical operation name.
func WithOperation(ctx context.Context, operation string) context.Context {
	if operation == "" {
		return ctx
	}
	return context.WithValue(ctx, operationKey, operation)
}

// OperationFromContext extracts the logical operation name if present.
func OperationFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(operationKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// WithRequestID annotates context with a correlation identifier for a single
// remote call, including its retries.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(requestIDKey).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
