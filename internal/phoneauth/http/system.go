package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/phoneauth/pkg/httpx"
	"github.com/aussiebroadwan/phoneauth/pkg/jwtx"
	"github.com/aussiebroadwan/phoneauth/pkg/phonesdk"
)

// Pinger is anything /readyz can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// JWKSHandler exposes the public keys that verify session tokens.
//
//	@Summary		Get JWKS
//	@Description	Returns the JSON Web Key Set used to verify session tokens.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	phonesdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, phonesdk.JWKSResponse(keys.PublicJWKS()))
	}
}

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe, always 200 while the process is serving.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	phonesdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, phonesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database, the code store and the session signer.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	phonesdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	phonesdk.HealthResponse	"service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, db, cache Pinger, keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := &phonesdk.HealthChecks{Database: "ok", Cache: "ok", Signer: "ok"}
		status, code := "ok", http.StatusOK
		degrade := func() { status, code = "degraded", http.StatusServiceUnavailable }

		if err := db.Ping(ctx); err != nil {
			checks.Database = "error: " + err.Error()
			degrade()
		}
		if err := cache.Ping(ctx); err != nil {
			checks.Cache = "error: " + err.Error()
			degrade()
		}
		if !keys.IsReady() {
			checks.Signer = "error: no keys loaded"
			degrade()
		}

		httpx.WriteJSON(w, code, phonesdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
