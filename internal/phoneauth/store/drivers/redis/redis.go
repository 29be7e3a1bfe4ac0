// Package redis implements the ephemeral stores (live codes, send
// cooldowns, failure counters and the lookup cache) on top of go-redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store"
)

const (
	keyPrefix      = "phoneauth:"
	otpPrefix      = keyPrefix + "otp:"
	cooldownPrefix = keyPrefix + "cooldown:"
	failurePrefix  = keyPrefix + "fail:"
)

// Ephemeral implements store.Ephemeral.
type Ephemeral struct {
	client *goredis.Client
	now    func() time.Time

	otp   *OTPCodes
	rate  *RateCounters
	cache *Cache
}

// Open parses a redis:// URL and returns a store over a new client. The
// connection is not checked; use Ping for that.
func Open(url string) (*Ephemeral, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return New(goredis.NewClient(opts)), nil
}

// New wraps an existing client.
func New(client *goredis.Client) *Ephemeral {
	e := &Ephemeral{client: client, now: time.Now}
	e.otp = &OTPCodes{client: client, now: e.now}
	e.rate = &RateCounters{client: client}
	e.cache = &Cache{client: client}
	return e
}

func (e *Ephemeral) OTPCodes() store.OTPCodes         { return e.otp }
func (e *Ephemeral) RateCounters() store.RateCounters { return e.rate }
func (e *Ephemeral) Cache() store.Cache               { return e.cache }

func (e *Ephemeral) Ping(ctx context.Context) error {
	if err := e.client.Ping(ctx).Err(); err != nil {
		return wrap("ping", err)
	}
	return nil
}

func (e *Ephemeral) Close() error {
	return e.client.Close()
}

// wrap maps redis.Nil to store.ErrNotFound and everything else to
// store.ErrUnavailable.
func wrap(op string, err error) error {
	if errors.Is(err, goredis.Nil) {
		return store.ErrNotFound
	}
	return fmt.Errorf("%w: redis %s: %w", store.ErrUnavailable, op, err)
}

var _ store.Ephemeral = (*Ephemeral)(nil)
