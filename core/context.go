package core

import "context"

// Context keys for report options
type contextKey string

const (
	suppressHeaderKey  contextKey = "suppressHeader"
	disableProgressKey contextKey = "disableProgress"
)

// WithSuppressHeader marks the context so report headers are not printed.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// WithDisableProgress marks the context so no progress bars are drawn.
func WithDisableProgress(ctx context.Context) context.Context {
	return context.WithValue(ctx, disableProgressKey, true)
}

// shouldDisableProgress returns whether progress bars are disabled from context
func shouldDisableProgress(ctx context.Context) bool {
	val := ctx.Value(disableProgressKey)
	if val == nil {
		return false
	}
	disabled, ok := val.(bool)
	return ok && disabled
}
