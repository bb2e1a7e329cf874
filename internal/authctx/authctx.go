package authctx

import (
	"context"
	"strings"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the authenticated caller as proven by a bearer token.
type Identity struct {
	Email string
}

func (id Identity) IsZero() bool {
	return id.Email == ""
}

// Owns reports whether the identity belongs to the given email address.
func (id Identity) Owns(email string) bool {
	return !id.IsZero() && strings.EqualFold(strings.TrimSpace(email), id.Email)
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok && !id.IsZero()
}
