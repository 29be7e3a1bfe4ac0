package httpx

import (
	"context"

	"github.com/aussiebroadwan/phoneauth/pkg/jwtx"
)

type claimsKey struct{}

// ClaimsFromContext returns the session claims AuthnMiddleware verified.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(jwtx.Claims)
	return c, ok
}

// UserIDFromContext returns the session subject, or "" outside an
// authenticated request.
func UserIDFromContext(ctx context.Context) string {
	c, _ := ClaimsFromContext(ctx)
	return c.Subject
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}
