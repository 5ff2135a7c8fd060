package api

import "context"

type contextKey string

const sessionIDKey contextKey = "session_id"

// WithSessionID attaches a study session id to the context for logging.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFrom extracts the session id from the context.
func SessionIDFrom(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIDKey).(string); ok {
		return v
	}
	return "unknown"
}
