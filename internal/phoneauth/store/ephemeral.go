package store

import (
	"context"
	"time"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
)

// OTPCodes is the TTL store holding at most one live code per phone.
// Implementations return ErrUnavailable (wrapped) when the backend cannot
// be reached so callers can tell it apart from ErrNotFound.
type OTPCodes interface {
	// PutOTP replaces any record for the phone, with attempts reset to 0.
	PutOTP(ctx context.Context, rec domain.OTPRecord, ttl time.Duration) error

	// GetOTP returns the live record or ErrNotFound.
	GetOTP(ctx context.Context, phone string) (domain.OTPRecord, error)

	// IncrementAttempts adds one attempt to the record whose digest is
	// codeHash, never beyond max. It returns the new count, or ErrNotFound
	// if the record is gone or has been replaced. When the record is
	// already at max it returns ErrExhausted and changes nothing.
	IncrementAttempts(ctx context.Context, phone, codeHash string, max int) (int, error)

	// ConsumeOTP deletes the record only if it still carries codeHash and
	// has attempts left. It returns false when another request got there first.
	ConsumeOTP(ctx context.Context, phone, codeHash string, max int) (bool, error)

	// RestoreOTP puts back a consumed record if no newer one exists.
	RestoreOTP(ctx context.Context, rec domain.OTPRecord) error
}

// RateCounters holds the send cooldowns and verification failure counters.
type RateCounters interface {
	// LastSend returns when a code was last sent to phone, or ErrNotFound.
	LastSend(ctx context.Context, phone string) (time.Time, error)

	// SetLastSend records a send at t, kept for window.
	SetLastSend(ctx context.Context, phone string, t time.Time, window time.Duration) error

	// ReserveSend records a send at t only if none is recorded yet.
	ReserveSend(ctx context.Context, phone string, t time.Time, window time.Duration) (bool, error)

	// ClearSend forgets the recorded send.
	ClearSend(ctx context.Context, phone string) error

	// Failures returns the failure count for source (0 if none).
	Failures(ctx context.Context, source string) (int, error)

	// AddFailure increments the count and resets its expiry to window.
	AddFailure(ctx context.Context, source string, window time.Duration) (int, error)

	// ClearFailures removes the counter.
	ClearFailures(ctx context.Context, source string) error
}

// Cache is a best-effort string cache. An ErrNotFound from Get is a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Ephemeral groups the TTL-backed stores so one driver can provide them all.
type Ephemeral interface {
	OTPCodes() OTPCodes
	RateCounters() RateCounters
	Cache() Cache

	Ping(ctx context.Context) error
	Close() error
}
