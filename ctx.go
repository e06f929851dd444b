package maestro

import (
	"context"
)

var identityCtxKey = &contextKey{"identity"}

type contextKey struct {
	name string
}

// WithIdentity sets the authenticated User in the given context
func WithIdentity(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, identityCtxKey, user)
}

// IdentityFromContext finds the user from the context.
func IdentityFromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(identityCtxKey).(*User)
	return raw, ok
}
