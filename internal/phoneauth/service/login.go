package service

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
)

// CheckMessage is returned for every phone whether or not it is registered.
const CheckMessage = "Continue to login or register."

// CheckResult tells the client which fields to collect. It never says
// whether the phone belongs to an account.
type CheckResult struct {
	Phone                 string
	ValidPhone            bool
	UserExists            *bool // always nil
	RequireEmail          bool
	RequireName           bool
	OnboardingTiming      domain.OnboardingTiming
	AllowCountrySelection bool
	CountryCode           string
	Message               string
}

// LoginService is the entry point for the three login steps. Each call
// works on one settings snapshot.
type LoginService struct {
	Settings func() domain.Settings
	Issuer   *OTPIssuer
	Verifier *OTPVerifier
	Sessions *SessionIssuer
}

// CheckPhone normalizes raw and reports the onboarding requirements. It
// reads no stored state.
func (s *LoginService) CheckPhone(_ context.Context, raw string) CheckResult {
	settings := s.Settings()
	phone := domain.NormalizePhone(raw, settings.CountryCode)

	return CheckResult{
		Phone:                 phone,
		ValidPhone:            domain.ValidPhone(phone),
		RequireEmail:          settings.RequireEmail,
		RequireName:           settings.RequireName,
		OnboardingTiming:      settings.OnboardingTiming,
		AllowCountrySelection: settings.AllowCountrySelection,
		CountryCode:           settings.CountryCode,
		Message:               CheckMessage,
	}
}

func (s *LoginService) SendOTP(ctx context.Context, raw string, before domain.Onboarding) (IssueResult, error) {
	settings := s.Settings()
	phone := domain.NormalizePhone(raw, settings.CountryCode)
	return s.Issuer.Issue(ctx, phone, cleanOnboarding(before), settings)
}

// VerifyOTP checks the code and returns a signed session for the account.
func (s *LoginService) VerifyOTP(ctx context.Context, raw, code string, after domain.Onboarding, source string) (domain.Session, error) {
	settings := s.Settings()
	phone := domain.NormalizePhone(raw, settings.CountryCode)

	outcome, err := s.Verifier.Verify(ctx, phone, strings.TrimSpace(code), cleanOnboarding(after), source, settings)
	if err != nil {
		return domain.Session{}, err
	}
	return s.Sessions.Mint(outcome)
}

func cleanOnboarding(o domain.Onboarding) domain.Onboarding {
	return domain.Onboarding{
		Email: strings.TrimSpace(o.Email),
		Name:  strings.TrimSpace(o.Name),
	}
}
