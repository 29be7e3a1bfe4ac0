package app

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/phoneauth/pkg/phonesdk"
	"github.com/aussiebroadwan/phoneauth/pkg/slogx"
)

type recordingGateway struct {
	mu    sync.Mutex
	codes map[string]string
}

func (g *recordingGateway) SendOTP(_ context.Context, _, phone, code string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.codes[phone] = code
	return nil
}

func testConfig(t *testing.T, redisURL string) Config {
	t.Helper()
	dir := t.TempDir()

	settings := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("api_key: test\nrequire_email: false\n"), 0o600))

	return Config{
		Issuer:               "phoneauth",
		SessionTTL:           time.Hour,
		AdminToken:           "admin",
		DatabaseFile:         filepath.Join(dir, "phoneauth.db"),
		RedisURL:             redisURL,
		PepperFile:           filepath.Join(dir, "pepper"),
		SettingsFile:         settings,
		Env:                  "dev",
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

func TestApplicationServesLogin(t *testing.T) {
	mr := miniredis.RunT(t)
	gw := &recordingGateway{codes: map[string]string{}}

	app, err := New(testConfig(t, "redis://"+mr.Addr()), WithLogger(slogx.Discard()), WithGateway(gw))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	c := phonesdk.NewClient(srv.URL)
	ctx := t.Context()

	_, err = c.SendOTP(ctx, phonesdk.SendOTPRequest{Phone: "9876543210"})
	require.NoError(t, err)

	gw.mu.Lock()
	code := gw.codes["+919876543210"]
	gw.mu.Unlock()

	sess, err := c.VerifyOTP(ctx, phonesdk.VerifyOTPRequest{Phone: "9876543210", OTP: code})
	require.NoError(t, err)
	require.True(t, sess.Created)
	require.InDelta(t, 3600, sess.ExpiresIn, 2)

	ready, err := c.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
}

func TestApplicationStartsWithoutRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	app, err := New(testConfig(t, "redis://"+addr), WithLogger(slogx.Discard()))
	require.NoError(t, err)
	require.NoError(t, app.Close())
}

func TestApplicationRejectsBadSettings(t *testing.T) {
	cfg := testConfig(t, "redis://localhost:1")
	require.NoError(t, os.WriteFile(cfg.SettingsFile, []byte("country_code: '+123456'\n"), 0o600))

	_, err := New(cfg, WithLogger(slogx.Discard()))
	require.Error(t, err)
}
