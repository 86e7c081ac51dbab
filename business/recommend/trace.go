package recommend

import "context"

type ctxKey string

const TraceIDKey ctxKey = "trace_id"

// WithTraceID returns ctx carrying the request trace id.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, TraceIDKey, id)
}

// TraceIDFromContext returns the trace id set by WithTraceID, or "" when
// there is none.
func TraceIDFromContext(ctx context.Context) string {
	if v := ctx.Value(TraceIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
