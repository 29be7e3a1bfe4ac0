package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/sms"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store"
	"github.com/aussiebroadwan/phoneauth/pkg/cryptox"
	"github.com/aussiebroadwan/phoneauth/pkg/idx"
)

// IssueResult describes a code that was sent. The code itself is never
// returned.
type IssueResult struct {
	Phone     string
	Length    int
	ExpiresAt time.Time
}

// OTPIssuer generates a code, stores its digest and hands it to the gateway.
type OTPIssuer struct {
	Codes   store.OTPCodes
	Limiter *RateLimiter
	Gateway sms.Gateway
	Hasher  *cryptox.OTPHasher

	// Fallback receives a durable copy of each issued code. Nil disables it.
	Fallback store.OTPLogins

	Logger *slog.Logger
	Now    func() time.Time
}

func (s *OTPIssuer) Issue(ctx context.Context, phone string, pending domain.Onboarding, settings domain.Settings) (IssueResult, error) {
	if !domain.ValidPhone(phone) {
		return IssueResult{}, ErrInvalidPhone
	}
	if settings.BeforeRequired() {
		if err := checkOnboarding(pending, settings); err != nil {
			return IssueResult{}, err
		}
	}
	// Request errors come first; an unconfigured gateway never takes a
	// cooldown slot.
	if !settings.GatewayConfigured() {
		return IssueResult{}, fmt.Errorf("%w: %w", ErrGateway, sms.ErrNotConfigured)
	}

	ok, err := s.Limiter.ReserveSend(ctx, phone)
	if err != nil {
		return IssueResult{}, fmt.Errorf("reserve send: %w", err)
	}
	if !ok {
		return IssueResult{}, ErrRateLimited
	}

	code, err := cryptox.GenerateNumericCode(settings.OTPLength)
	if err != nil {
		_ = s.Limiter.ReleaseSend(ctx, phone)
		return IssueResult{}, err
	}

	now := s.now()
	rec := domain.OTPRecord{
		Phone:      phone,
		CodeHash:   s.Hasher.Digest(phone, code),
		ExpiresAt:  now.Add(settings.OTPExpiry()),
		Onboarding: pending,
	}
	if err := s.store(ctx, rec, now, settings.OTPExpiry()); err != nil {
		_ = s.Limiter.ReleaseSend(ctx, phone)
		return IssueResult{}, err
	}

	// The record stays in place on failure so a retry after the cooldown
	// simply replaces it.
	if err := s.Gateway.SendOTP(ctx, settings.APIKey, phone, code); err != nil {
		s.log().Warn("sms gateway failed", maskedPhone(phone), "error", err)
		return IssueResult{}, fmt.Errorf("%w: %w", ErrGateway, err)
	}

	s.log().Info("otp issued", maskedPhone(phone), "expires_at", rec.ExpiresAt)
	return IssueResult{Phone: phone, Length: settings.OTPLength, ExpiresAt: rec.ExpiresAt}, nil
}

// store writes the live record. When the fallback table is enabled it also
// gets a copy, and it alone carries the code if the live store is down.
func (s *OTPIssuer) store(ctx context.Context, rec domain.OTPRecord, now time.Time, ttl time.Duration) error {
	putErr := s.Codes.PutOTP(ctx, rec, ttl)
	if putErr != nil && (s.Fallback == nil || !errors.Is(putErr, store.ErrUnavailable)) {
		return fmt.Errorf("store otp: %w", putErr)
	}
	if s.Fallback == nil {
		return nil
	}

	err := s.Fallback.CreateOTPLogin(ctx, domain.OTPLogin{
		ID:        idx.NewAt(now).String(),
		Phone:     rec.Phone,
		CodeHash:  rec.CodeHash,
		ExpiresAt: rec.ExpiresAt,
		CreatedAt: now,
	})
	switch {
	case err == nil:
		if putErr != nil {
			s.log().Warn("otp store unavailable, code kept in fallback table only", maskedPhone(rec.Phone))
		}
		return nil
	case putErr != nil:
		return fmt.Errorf("store otp: %w", errors.Join(putErr, err))
	default:
		s.log().Warn("otp fallback copy failed", maskedPhone(rec.Phone), "error", err)
		return nil
	}
}

// checkOnboarding validates fields collected before a code is sent. The
// user is told which of their own fields is missing.
func checkOnboarding(o domain.Onboarding, settings domain.Settings) error {
	var missing error
	switch {
	case settings.RequireEmail && o.Email == "":
		missing = ErrEmailRequired
	case settings.RequireName && o.Name == "":
		missing = ErrNameRequired
	case o.Email != "" && !domain.ValidEmail(o.Email):
		missing = ErrInvalidEmail
	default:
		return nil
	}
	return fmt.Errorf("%w: %w", ErrOnboardingIncomplete, missing)
}

func (s *OTPIssuer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *OTPIssuer) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
