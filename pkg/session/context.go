package session

import "context"

// Identity is the authenticated actor bound to a request.
type Identity struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
}

type contextKey struct{}

// WithIdentity returns a child context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity bound to ctx, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok && id.UserID != 0
}
