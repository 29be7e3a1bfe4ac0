package httpx

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/phoneauth/pkg/cryptox"
)

const (
	CSRFCookieName = "phoneauth_csrf"
	CSRFHeaderName = "X-CSRF-Token"
)

// IssueCSRFCookie sets a fresh double-submit token cookie and returns the
// token so it can also be handed to the client in the body.
func IssueCSRFCookie(w http.ResponseWriter, secure bool, ttl time.Duration) (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Secure:   secure,
		HttpOnly: false, // the client reads it to echo in the header
		SameSite: http.SameSiteStrictMode,
	})
	return token, nil
}

// CSRFMiddleware rejects unsafe requests whose CSRF header does not match
// the CSRF cookie.
func CSRFMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(CSRFCookieName)
			if err != nil || !cryptox.EqualToken(cookie.Value, r.Header.Get(CSRFHeaderName)) {
				WriteError(w, http.StatusForbidden, "csrf_failed", "missing or mismatched csrf token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
