package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store"
	"github.com/aussiebroadwan/phoneauth/pkg/slogx"
)

const (
	SendCooldown  = 60 * time.Second
	FailureWindow = 300 * time.Second
	MaxFailures   = 3
)

// RateLimiter enforces the per-phone send cooldown and the per-source
// failure lockout. Losing its counters only weakens throttling, so when the
// counter store is unreachable it logs and lets the request through.
type RateLimiter struct {
	Counters store.RateCounters
	Logger   *slog.Logger
	Now      func() time.Time
}

func (l *RateLimiter) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// CanSend reports whether no send was recorded for phone in the cooldown.
func (l *RateLimiter) CanSend(ctx context.Context, phone string) (bool, error) {
	last, err := l.Counters.LastSend(ctx, phone)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return true, nil
	case l.failOpen("can send", err):
		return true, nil
	case err != nil:
		return false, err
	}
	return l.now().Sub(last) >= SendCooldown, nil
}

// RecordSend starts or refreshes the cooldown for phone.
func (l *RateLimiter) RecordSend(ctx context.Context, phone string) error {
	err := l.Counters.SetLastSend(ctx, phone, l.now(), SendCooldown)
	if l.failOpen("record send", err) {
		return nil
	}
	return err
}

// ReserveSend is CanSend and RecordSend as one atomic step.
func (l *RateLimiter) ReserveSend(ctx context.Context, phone string) (bool, error) {
	ok, err := l.Counters.ReserveSend(ctx, phone, l.now(), SendCooldown)
	if l.failOpen("reserve send", err) {
		return true, nil
	}
	return ok, err
}

// ReleaseSend drops a reservation whose code was never stored.
func (l *RateLimiter) ReleaseSend(ctx context.Context, phone string) error {
	err := l.Counters.ClearSend(ctx, phone)
	if l.failOpen("release send", err) {
		return nil
	}
	return err
}

// IsLockedOut reports whether source has MaxFailures or more recent failures.
func (l *RateLimiter) IsLockedOut(ctx context.Context, source string) (bool, error) {
	n, err := l.Counters.Failures(ctx, source)
	if l.failOpen("is locked out", err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n >= MaxFailures, nil
}

// RecordFailure counts a failed verification and restarts the window.
func (l *RateLimiter) RecordFailure(ctx context.Context, source string) error {
	_, err := l.Counters.AddFailure(ctx, source, FailureWindow)
	if l.failOpen("record failure", err) {
		return nil
	}
	return err
}

func (l *RateLimiter) ClearFailures(ctx context.Context, source string) error {
	err := l.Counters.ClearFailures(ctx, source)
	if l.failOpen("clear failures", err) {
		return nil
	}
	return err
}

func (l *RateLimiter) failOpen(op string, err error) bool {
	if !errors.Is(err, store.ErrUnavailable) {
		return false
	}
	if l.Logger != nil {
		l.Logger.Warn("rate counters unavailable, not enforcing", "op", op, "error", err)
	}
	return true
}

// maskedPhone is the log attribute used for phone numbers.
func maskedPhone(phone string) slog.Attr {
	return slog.String("phone", slogx.MaskPhone(phone))
}
