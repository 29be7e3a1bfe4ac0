//go:build integration

package phoneauth_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/app"
	"github.com/aussiebroadwan/phoneauth/pkg/phonesdk"
	"github.com/aussiebroadwan/phoneauth/pkg/slogx"
)

/*
 * End-to-end tests run the whole application in-process against a real
 * redis container. SMS delivery is captured by a stub gateway.
 */

const (
	redisImage = "redis:7-alpine"
	adminToken = "e2e-admin-token"
)

// smsInbox records the last code sent to each phone.
type smsInbox struct {
	mu    sync.Mutex
	codes map[string]string
}

func (s *smsInbox) SendOTP(_ context.Context, _, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[phone] = code
	return nil
}

func (s *smsInbox) last(t *testing.T, phone string) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.codes[phone]
	require.True(t, ok, "no sms sent to %s", phone)
	return code
}

type env struct {
	client *phonesdk.Client
	inbox  *smsInbox
	redis  testcontainers.Container
}

// setupRedisContainer starts redis and returns its URL.
func setupRedisContainer(t *testing.T) (testcontainers.Container, string) {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        redisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	return container, fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

// setupService runs the application against a fresh redis and database.
func setupService(t *testing.T, settingsYAML string, fallback bool) *env {
	t.Helper()

	container, redisURL := setupRedisContainer(t)
	dir := t.TempDir()

	settings := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte(settingsYAML), 0o600))

	cfg := app.Config{
		Issuer:               "phoneauth-e2e",
		SessionKeyFile:       filepath.Join(dir, "session.pem"),
		SessionTTL:           time.Hour,
		AdminToken:           adminToken,
		DatabaseFile:         filepath.Join(dir, "phoneauth.db"),
		RedisURL:             redisURL,
		PepperFile:           filepath.Join(dir, "pepper"),
		SettingsFile:         settings,
		OTPFallback:          fallback,
		Env:                  "dev",
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}

	inbox := &smsInbox{codes: map[string]string{}}
	application, err := app.New(cfg, app.WithLogger(slogx.Discard()), app.WithGateway(inbox))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	return &env{client: phonesdk.NewClient(srv.URL), inbox: inbox, redis: container}
}

// login sends and verifies a code for phone.
func (e *env) login(t *testing.T, phone string, after *phonesdk.Onboarding) *phonesdk.Session {
	t.Helper()
	ctx := t.Context()

	sent, err := e.client.SendOTP(ctx, phonesdk.SendOTPRequest{Phone: phone})
	require.NoError(t, err)

	sess, err := e.client.VerifyOTP(ctx, phonesdk.VerifyOTPRequest{
		Phone: phone,
		OTP:   e.inbox.last(t, sent.Phone),
		After: after,
	})
	require.NoError(t, err)
	return sess
}

// clearCooldown lifts the one-minute send limit on phone.
func (e *env) clearCooldown(t *testing.T, phone string) {
	t.Helper()

	code, _, err := e.redis.Exec(t.Context(), []string{"redis-cli", "DEL", "phoneauth:cooldown:" + phone})
	require.NoError(t, err)
	require.Zero(t, code)
}
