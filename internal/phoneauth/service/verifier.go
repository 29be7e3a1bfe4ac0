package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store"
	"github.com/aussiebroadwan/phoneauth/pkg/cryptox"
)

// OTPVerifier checks a submitted code and logs the phone's owner in.
//
// Per phone the code moves from pending to verified, expired or exhausted.
// The attempt increment and the final consume are single atomic operations
// in the code store, so concurrent submissions cannot exceed the attempt
// cap or use one code twice.
type OTPVerifier struct {
	Codes    store.OTPCodes
	Limiter  *RateLimiter
	Accounts *AccountResolver
	Hasher   *cryptox.OTPHasher

	// Fallback is consulted read-only when Codes is unreachable. Nil disables it.
	Fallback store.OTPLogins

	Logger *slog.Logger
	Now    func() time.Time
}

func (v *OTPVerifier) Verify(
	ctx context.Context,
	phone, code string,
	after domain.Onboarding,
	source string,
	settings domain.Settings,
) (domain.LoginOutcome, error) {
	locked, err := v.Limiter.IsLockedOut(ctx, source)
	if err != nil {
		return domain.LoginOutcome{}, fmt.Errorf("lockout check: %w", err)
	}
	if locked {
		return domain.LoginOutcome{}, ErrSourceLockedOut
	}

	if !domain.ValidPhone(phone) {
		return domain.LoginOutcome{}, ErrInvalidPhone
	}
	if code == "" {
		return domain.LoginOutcome{}, ErrCodeRequired
	}

	rec, err := v.Codes.GetOTP(ctx, phone)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.LoginOutcome{}, ErrNoActiveCode
	case errors.Is(err, store.ErrUnavailable) && v.Fallback != nil:
		v.log().Warn("otp store unavailable, using fallback table", maskedPhone(phone), "error", err)
		return v.verifyFallback(ctx, phone, code, after, source, settings)
	case err != nil:
		return domain.LoginOutcome{}, fmt.Errorf("load otp: %w", err)
	}

	if rec.Expired(v.now()) {
		return domain.LoginOutcome{}, ErrNoActiveCode
	}
	if rec.Exhausted() {
		return domain.LoginOutcome{}, ErrAttemptsExhausted
	}

	if !v.Hasher.Matches(phone, code, rec.CodeHash) {
		return domain.LoginOutcome{}, v.wrongCode(ctx, rec, source)
	}

	if err := v.Limiter.ClearFailures(ctx, source); err != nil {
		v.log().Warn("clear failures failed", "error", err)
	}

	consumed, err := v.Codes.ConsumeOTP(ctx, phone, rec.CodeHash, domain.MaxOTPAttempts)
	if err != nil {
		return domain.LoginOutcome{}, fmt.Errorf("consume otp: %w", err)
	}
	if !consumed {
		return domain.LoginOutcome{}, ErrNoActiveCode
	}

	outcome, err := v.login(ctx, phone, rec.Onboarding.Merge(after), settings)
	if err != nil {
		// Put the code back so the user can fix their details and retry.
		if rerr := v.Codes.RestoreOTP(ctx, rec); rerr != nil {
			v.log().Warn("restore otp failed", maskedPhone(phone), "error", rerr)
		}
		return domain.LoginOutcome{}, err
	}

	if v.Fallback != nil {
		if err := v.Fallback.MarkPhoneVerified(ctx, phone); err != nil {
			v.log().Warn("fallback rows not marked verified", maskedPhone(phone), "error", err)
		}
	}
	return outcome, nil
}

func (v *OTPVerifier) wrongCode(ctx context.Context, rec domain.OTPRecord, source string) error {
	result := ErrInvalidCode

	_, err := v.Codes.IncrementAttempts(ctx, rec.Phone, rec.CodeHash, domain.MaxOTPAttempts)
	switch {
	case errors.Is(err, store.ErrExhausted):
		result = ErrAttemptsExhausted
	case errors.Is(err, store.ErrNotFound):
		// Replaced or expired since it was read. Still a wrong guess.
	case err != nil:
		return fmt.Errorf("count attempt: %w", err)
	}

	if err := v.Limiter.RecordFailure(ctx, source); err != nil {
		v.log().Warn("record failure failed", "error", err)
	}
	return result
}

// verifyFallback checks the newest durable copy. Attempts are never written
// back to it; a row past the cap is refused and a used row is consumed.
func (v *OTPVerifier) verifyFallback(
	ctx context.Context,
	phone, code string,
	after domain.Onboarding,
	source string,
	settings domain.Settings,
) (domain.LoginOutcome, error) {
	row, err := v.Fallback.GetLatestUnverified(ctx, phone, v.now())
	if errors.Is(err, store.ErrNotFound) {
		return domain.LoginOutcome{}, ErrNoActiveCode
	}
	if err != nil {
		return domain.LoginOutcome{}, fmt.Errorf("load fallback otp: %w", err)
	}
	if row.Attempts >= domain.MaxOTPAttempts {
		return domain.LoginOutcome{}, ErrAttemptsExhausted
	}

	if !v.Hasher.Matches(phone, code, row.CodeHash) {
		if err := v.Limiter.RecordFailure(ctx, source); err != nil {
			v.log().Warn("record failure failed", "error", err)
		}
		return domain.LoginOutcome{}, ErrInvalidCode
	}

	if err := v.Limiter.ClearFailures(ctx, source); err != nil {
		v.log().Warn("clear failures failed", "error", err)
	}

	if err := v.Fallback.MarkVerified(ctx, row.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.LoginOutcome{}, ErrNoActiveCode
		}
		return domain.LoginOutcome{}, fmt.Errorf("consume fallback otp: %w", err)
	}

	return v.login(ctx, phone, after, settings)
}

func (v *OTPVerifier) login(ctx context.Context, phone string, onboarding domain.Onboarding, settings domain.Settings) (domain.LoginOutcome, error) {
	user, created, err := v.Accounts.Resolve(ctx, phone, onboarding, settings)
	if err != nil {
		return domain.LoginOutcome{}, err
	}

	v.log().Info("phone login", "user_id", user.ID, "created", created, maskedPhone(phone))
	return domain.LoginOutcome{
		UserID:      user.ID,
		Username:    user.Username,
		Role:        user.Role,
		Created:     created,
		RedirectURL: settings.LoginRedirect(user.Role),
	}, nil
}

func (v *OTPVerifier) now() time.Time {
	if v.Now != nil {
		return v.Now()
	}
	return time.Now()
}

func (v *OTPVerifier) log() *slog.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return slog.Default()
}
