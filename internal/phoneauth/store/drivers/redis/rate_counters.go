package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store"
)

// RateCounters keeps the last send per phone and failure counts per source.
type RateCounters struct {
	client *goredis.Client
}

func cooldownKey(phone string) string { return cooldownPrefix + phone }
func failureKey(source string) string  { return failurePrefix + source }

func (r *RateCounters) LastSend(ctx context.Context, phone string) (time.Time, error) {
	ms, err := r.client.Get(ctx, cooldownKey(phone)).Int64()
	if err != nil {
		return time.Time{}, wrap("get cooldown", err)
	}
	return time.UnixMilli(ms).UTC(), nil
}

func (r *RateCounters) SetLastSend(ctx context.Context, phone string, t time.Time, window time.Duration) error {
	if err := r.client.Set(ctx, cooldownKey(phone), t.UnixMilli(), window).Err(); err != nil {
		return wrap("set cooldown", err)
	}
	return nil
}

func (r *RateCounters) ReserveSend(ctx context.Context, phone string, t time.Time, window time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, cooldownKey(phone), t.UnixMilli(), window).Result()
	if err != nil {
		return false, wrap("reserve cooldown", err)
	}
	return ok, nil
}

func (r *RateCounters) ClearSend(ctx context.Context, phone string) error {
	if err := r.client.Del(ctx, cooldownKey(phone)).Err(); err != nil {
		return wrap("clear cooldown", err)
	}
	return nil
}

func (r *RateCounters) Failures(ctx context.Context, source string) (int, error) {
	n, err := r.client.Get(ctx, failureKey(source)).Int()
	if err == goredis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, wrap("get failures", err)
	}
	return n, nil
}

// AddFailure bumps the counter and pushes its expiry out to window, so the
// lockout lasts until window has passed since the latest failure.
func (r *RateCounters) AddFailure(ctx context.Context, source string, window time.Duration) (int, error) {
	if window <= 0 {
		return 0, fmt.Errorf("invalid failure window %s", window)
	}

	key := failureKey(source)
	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, wrap("add failure", err)
	}
	return int(incr.Val()), nil
}

func (r *RateCounters) ClearFailures(ctx context.Context, source string) error {
	if err := r.client.Del(ctx, failureKey(source)).Err(); err != nil {
		return wrap("clear failures", err)
	}
	return nil
}

var _ store.RateCounters = (*RateCounters)(nil)
