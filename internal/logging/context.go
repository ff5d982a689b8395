package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldInvocationID identifies one node run across every log line it emits.
	FieldInvocationID = "invocation_id"
	// FieldStage is the standardized structured logging key for pipeline stage names.
	FieldStage = "stage"
	// FieldError carries the error value of a failure.
	FieldError = "error"
)

type invocationKey struct{}

// WithInvocationID stores id on ctx for WithContext.
func WithInvocationID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, invocationKey{}, id)
}

// InvocationIDFromContext returns the id stored by WithInvocationID.
func InvocationIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(invocationKey{}).(string)
	return id, ok && id != ""
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	id, ok := InvocationIDFromContext(ctx)
	if !ok {
		return logger
	}
	return logger.With(String(FieldInvocationID, id))
}
