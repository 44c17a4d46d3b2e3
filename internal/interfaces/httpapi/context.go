package httpapi

import (
	"context"

	"github.com/hanabarena/hanab-arena/internal/domain/user"
)

type contextKey string

const principalContextKey contextKey = "auth_principal"

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

// viewerFromContext is principalFromContext for gated reads, where anonymous
// is a legal state rather than an error.
func viewerFromContext(ctx context.Context) *user.Principal {
	if p, ok := principalFromContext(ctx); ok {
		return &p
	}
	return nil
}
