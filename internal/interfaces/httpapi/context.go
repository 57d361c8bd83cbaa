package httpapi

import (
	"context"

	"github.com/courtsync/courtsync/internal/domain/apikey"
)

type contextKey string

const principalContextKey contextKey = "auth_principal"

func withPrincipal(ctx context.Context, p apikey.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (apikey.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(apikey.Principal)
	return p, ok
}
