package middleware

import "context"

type contextKey string

const (
	ctxAdminID  contextKey = "admin_id"
	ctxUsername contextKey = "admin_username"
)

func AdminIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxAdminID).(int64); ok {
		return v
	}
	return 0
}

func UsernameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUsername).(string); ok {
		return v
	}
	return ""
}

// WithAdmin seeds the context with the authenticated admin identity.
func WithAdmin(ctx context.Context, adminID int64, username string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxAdminID, adminID)
	return context.WithValue(ctx, ctxUsername, username)
}
