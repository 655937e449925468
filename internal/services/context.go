package services

import "context"

type contextKey string

const (
	bundleIDKey  contextKey = "bundle_id"
	jobIDKey     contextKey = "job_id"
	operationKey contextKey = "operation"
)

// WithBundleID annotates context with a catalog bundle identifier.
func WithBundleID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, bundleIDKey, id)
}

// BundleIDFromContext extracts the bundle identifier if present.
func BundleIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(bundleIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithJobID annotates context with an extraction job identifier.
func WithJobID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, jobIDKey, id)
}

// JobIDFromContext extracts the extraction job identifier if present.
func JobIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(jobIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithOperation annotates context with an operation name.
func WithOperation(ctx context.Context, op string) context.Context {
	if op == "" {
		return ctx
	}
	return context.WithValue(ctx, operationKey, op)
}

// OperationFromContext returns the operation name if present.
func OperationFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(operationKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
