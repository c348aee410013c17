package middleware

import "context"

type contextKey int

const (
	keyUserID contextKey = iota
	keyRole
	keyUserName
	keyToken
	keyRequestID
)

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

func withString(ctx context.Context, key contextKey, value string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, key, value)
}

func UserIDFromContext(ctx context.Context) string   { return stringValue(ctx, keyUserID) }
func RoleFromContext(ctx context.Context) string     { return stringValue(ctx, keyRole) }
func UserNameFromContext(ctx context.Context) string { return stringValue(ctx, keyUserName) }
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, keyRequestID)
}

// SessionTokenFromContext returns the raw token presented with the request,
// even when it did not authenticate.
func SessionTokenFromContext(ctx context.Context) string { return stringValue(ctx, keyToken) }

func WithUserID(ctx context.Context, userID string) context.Context {
	return withString(ctx, keyUserID, userID)
}

func WithRole(ctx context.Context, role string) context.Context {
	return withString(ctx, keyRole, role)
}
