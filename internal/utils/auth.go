package utils

import "context"

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom reports false for anonymous requests and for a zero user id.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok && id.UserID != 0
}

func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := IdentityFrom(ctx)
	return id.UserID, ok
}

func IsAdmin(ctx context.Context) bool {
	id, ok := IdentityFrom(ctx)
	return ok && id.IsAdmin()
}
