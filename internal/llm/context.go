package llm

import "context"

// Labels carried on the context end up on the recorded event.
type labelKey int

const (
	purposeKey labelKey = iota
	traceKey
)

// WithPurpose names what a request is for, e.g. "module" or "evaluation".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns "unknown" when no purpose was set.
func PurposeFrom(ctx context.Context) string {
	return label(ctx, purposeKey, "unknown")
}

// WithTrace groups the requests made for one learning module.
func WithTrace(ctx context.Context, trace string) context.Context {
	return context.WithValue(ctx, traceKey, trace)
}

func TraceFrom(ctx context.Context) string {
	return label(ctx, traceKey, "")
}

func label(ctx context.Context, k labelKey, fallback string) string {
	if v, ok := ctx.Value(k).(string); ok {
		return v
	}
	return fallback
}
