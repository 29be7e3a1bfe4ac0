package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store/drivers/redis"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store/drivers/sqlite"
	"github.com/aussiebroadwan/phoneauth/pkg/cryptox"
	"github.com/aussiebroadwan/phoneauth/pkg/jwtx"
	"github.com/aussiebroadwan/phoneauth/pkg/slogx"
)

const (
	testPhone    = "+911234564567"
	testRawPhone = "12345 64567"
	otherPhone   = "+919876543210"
)

// fakeGateway captures the codes it is asked to send.
type fakeGateway struct {
	mu    sync.Mutex
	codes map[string]string
	calls int
	err   error
}

func (g *fakeGateway) SendOTP(_ context.Context, _, phone, code string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls++
	if g.err != nil {
		return g.err
	}
	g.codes[phone] = code
	return nil
}

func (g *fakeGateway) code(t *testing.T, phone string) string {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.codes[phone]
	require.True(t, ok, "no code sent to %s", phone)
	return c
}

func (g *fakeGateway) sent() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// testClock moves the service clock and the redis TTLs together.
type testClock struct {
	mu sync.Mutex
	t  time.Time
	mr *miniredis.Miniredis
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
	c.mr.FastForward(d)
}

type harness struct {
	ctx      context.Context
	db       *sqlite.Store
	mr       *miniredis.Miniredis
	codes    store.OTPCodes
	gateway  *fakeGateway
	clock    *testClock
	keys     *jwtx.KeyManager
	settings domain.Settings

	limiter   *RateLimiter
	directory *PhoneDirectory
	accounts  *AccountResolver
	issuer    *OTPIssuer
	verifier  *OTPVerifier
	login     *LoginService
	profiles  *ProfileService
}

type harnessOption func(*harness)

func withSettings(fn func(*domain.Settings)) harnessOption {
	return func(h *harness) { fn(&h.settings) }
}

func withFallback() harnessOption {
	return func(h *harness) {
		h.issuer.Fallback = h.db.OTPLogins()
		h.verifier.Fallback = h.db.OTPLogins()
	}
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()

	db, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.ApplyMigrations())

	mr := miniredis.RunT(t)
	eph := redis.New(goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1}))
	t.Cleanup(func() { _ = eph.Close() })

	hasher, err := cryptox.NewOTPHasher("test-pepper")
	require.NoError(t, err)

	keys, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: "https://phoneauth.test"})
	require.NoError(t, err)

	logger := slogx.Discard()
	clock := &testClock{t: time.Now().UTC().Truncate(time.Millisecond), mr: mr}

	settings := domain.DefaultSettings()
	settings.APIKey = "test-key"
	settings.RequireEmail = false

	h := &harness{
		ctx:      context.Background(),
		db:       db,
		mr:       mr,
		codes:    eph.OTPCodes(),
		gateway:  &fakeGateway{codes: map[string]string{}},
		clock:    clock,
		keys:     keys,
		settings: settings,
	}

	h.limiter = &RateLimiter{Counters: eph.RateCounters(), Logger: logger, Now: clock.Now}
	h.directory = &PhoneDirectory{Store: db, Cache: eph.Cache(), Logger: logger, Now: clock.Now}
	h.accounts = &AccountResolver{Store: db, Directory: h.directory, Logger: logger, Now: clock.Now}
	h.issuer = &OTPIssuer{
		Codes:   eph.OTPCodes(),
		Limiter: h.limiter,
		Gateway: h.gateway,
		Hasher:  hasher,
		Logger:  logger,
		Now:     clock.Now,
	}
	h.verifier = &OTPVerifier{
		Codes:    eph.OTPCodes(),
		Limiter:  h.limiter,
		Accounts: h.accounts,
		Hasher:   hasher,
		Logger:   logger,
		Now:      clock.Now,
	}

	for _, opt := range opts {
		opt(h)
	}

	current := func() domain.Settings { return h.settings }
	h.login = &LoginService{
		Settings: current,
		Issuer:   h.issuer,
		Verifier: h.verifier,
		Sessions: &SessionIssuer{Signer: keys.Signer, Issuer: "https://phoneauth.test", Now: clock.Now},
	}
	h.profiles = &ProfileService{Store: db, Directory: h.directory, Settings: current, Logger: logger}
	return h
}

// send issues a code to phone and returns what the gateway received.
func (h *harness) send(t *testing.T, phone string, before domain.Onboarding) string {
	t.Helper()
	_, err := h.login.SendOTP(h.ctx, phone, before)
	require.NoError(t, err)
	return h.gateway.code(t, domain.NormalizePhone(phone, h.settings.CountryCode))
}

func (h *harness) verify(phone, code, source string, after domain.Onboarding) (domain.Session, error) {
	return h.login.VerifyOTP(h.ctx, phone, code, after, source)
}

// register logs phone in for the first time and returns the new user.
func (h *harness) register(t *testing.T, phone string, ob domain.Onboarding) domain.User {
	t.Helper()

	code := h.send(t, phone, domain.Onboarding{})
	sess, err := h.verify(phone, code, "register", ob)
	require.NoError(t, err)
	require.True(t, sess.Created)

	// Drop the cooldown so the test can send to this phone again.
	require.NoError(t, h.limiter.Counters.ClearSend(h.ctx, domain.NormalizePhone(phone, h.settings.CountryCode)))

	u, err := h.db.Users().GetUserByID(h.ctx, sess.UserID)
	require.NoError(t, err)
	return u
}

// wrong returns a code of the same length that differs from code.
func wrong(code string) string {
	b := []byte(code)
	b[0] = '0' + (b[0]-'0'+1)%10
	return string(b)
}

var errBoom = errors.New("boom")
