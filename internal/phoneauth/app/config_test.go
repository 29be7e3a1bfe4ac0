package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, "phoneauth", cfg.Issuer)
	require.Equal(t, 14*24*time.Hour, cfg.SessionTTL)
	require.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	require.Equal(t, "https://2factor.in", cfg.SMSBaseURL)
	require.Equal(t, 15*time.Second, cfg.SMSTimeout)
	require.False(t, cfg.OTPFallback)
	require.Equal(t, 8080, cfg.Port)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PHONEAUTH_SESSION_TTL", "2h")
	t.Setenv("PHONEAUTH_OTP_FALLBACK", "true")
	t.Setenv("TRUST_PROXY_HEADERS", "not-a-bool")
	t.Setenv("HOUSEKEEPING_INTERVAL", "30")
	t.Setenv("PORT", "9090")

	cfg := LoadConfig()

	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.True(t, cfg.OTPFallback)
	require.False(t, cfg.TrustProxyHeaders)
	require.Equal(t, 30*time.Minute, cfg.HousekeepingInterval)
	require.Equal(t, 9090, cfg.Port)
}
