package log

import "context"

// WithRequestID stores a request id that every log line written with ctx will carry.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// WithSessionID stores a chat session id that every log line written with ctx will carry.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ctxKeySessionID, sessionID)
}

func fieldsFromContext(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	var fields []any
	if v, ok := ctx.Value(ctxKeyRequestID).(string); ok && v != "" {
		fields = append(fields, string(ctxKeyRequestID), v)
	}
	if v, ok := ctx.Value(ctxKeySessionID).(string); ok && v != "" {
		fields = append(fields, string(ctxKeySessionID), v)
	}
	return fields
}
