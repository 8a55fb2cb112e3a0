package auth

import "context"

type contextKey string

const contextKeyUser contextKey = "auth.username"

// WithUser stores the authenticated username in context.
func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, contextKeyUser, username)
}

// UserFromContext extracts the authenticated username from context.
func UserFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if username, ok := ctx.Value(contextKeyUser).(string); ok {
		return username
	}
	return ""
}
