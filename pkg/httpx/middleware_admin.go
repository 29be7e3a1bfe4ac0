package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/phoneauth/pkg/cryptox"
	"github.com/aussiebroadwan/phoneauth/pkg/slogx"
)

// RequireStaticToken guards operator endpoints with a shared bearer token.
// An empty token disables the endpoints entirely.
func RequireStaticToken(token string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				WriteError(w, http.StatusServiceUnavailable, "temporarily_unavailable", "admin endpoints are disabled")
				return
			}

			raw, _ := bearerToken(r)
			if !cryptox.EqualToken(token, raw) {
				slogx.FromContext(r.Context()).Warn("admin token rejected")
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				WriteError(w, http.StatusUnauthorized, "invalid_token", "admin token required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
