package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/service"
	"github.com/aussiebroadwan/phoneauth/pkg/httpx"
	"github.com/aussiebroadwan/phoneauth/pkg/jwtx"
	"github.com/aussiebroadwan/phoneauth/pkg/slogx"

	_ "github.com/aussiebroadwan/phoneauth/api/phoneauth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	db           Pinger
	cache        Pinger

	LoginService   *service.LoginService
	ProfileService *service.ProfileService

	// AdminToken guards /v1/admin. Empty disables those routes.
	AdminToken string
	// TrustProxy makes X-Forwarded-For and X-Real-IP the client address.
	TrustProxy    bool
	SecureCookies bool
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	db, cache Pinger,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		db:           db,
		cache:        cache,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerLogin()
	r.registerSession()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title						Phone Login Service API
//	@version					0.1.0
//	@description				Passwordless phone login with SMS one-time codes.
//	@description
//	@description				A verified code yields an EdDSA signed session token that can be checked against the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/phoneauth
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
//
//	@securityDefinitions.apikey	AdminToken
//	@in							header
//	@name						Authorization
//	@description				Operator token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerLogin() {
	h := &LoginHandler{
		Login:         r.LoginService,
		Source:        httpx.ClientIP(r.TrustProxy),
		SecureCookies: r.SecureCookies,
	}

	r.Mux.Handle("GET /v1/login/csrf",
		httpx.Chain(http.HandlerFunc(h.HandleCSRF),
			httpx.RateLimitByIP(httpx.PublicLimit, r.TrustProxy),
		),
	)

	// Each endpoint gets its own limiter.
	for pattern, fn := range map[string]http.HandlerFunc{
		"POST /v1/login/check":  h.HandleCheck,
		"POST /v1/login/otp":    h.HandleSendOTP,
		"POST /v1/login/verify": h.HandleVerify,
	} {
		r.Mux.Handle(pattern,
			httpx.Chain(fn,
				httpx.RateLimitByIP(httpx.LoginLimit, r.TrustProxy),
				httpx.CSRFMiddleware(),
			),
		)
	}
}

func (r *Router) registerSession() {
	h := &MeHandler{Profiles: r.ProfileService}

	r.Mux.Handle("GET /v1/me",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.SessionLimit, r.TrustProxy),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminUsersHandler{Profiles: r.ProfileService}

	secure := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RateLimitByIP(httpx.SessionLimit, r.TrustProxy),
			httpx.RequireStaticToken(r.AdminToken),
		)
	}

	r.Mux.Handle("GET /v1/admin/users/{id}", secure(h.HandleGet))
	r.Mux.Handle("PUT /v1/admin/users/{id}", secure(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/admin/users/{id}", secure(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit, r.TrustProxy),
		),
	)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit, r.TrustProxy),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.db, r.cache, r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit, r.TrustProxy),
		),
	)
}
