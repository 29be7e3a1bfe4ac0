package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

type OnboardingTiming string

const (
	// OnboardingAfter collects onboarding fields once the code is verified.
	OnboardingAfter OnboardingTiming = "after"
	// OnboardingBoth also requires them before a code is sent.
	OnboardingBoth OnboardingTiming = "both"
)

type UsernameMode string

const (
	UsernameTruncated UsernameMode = "truncated" // user_<last4>_<random4>
	UsernameFull      UsernameMode = "full"      // user_<digits>
)

// Bounds applied to numeric settings when they are loaded.
const (
	MinOTPLength     = 4
	MaxOTPLength     = 8
	MinOTPExpirySecs = 60
	MaxOTPExpirySecs = 900
)

// PlaceholderAPIKey is the key shipped in sample configuration. It is
// treated the same as no key at all.
const PlaceholderAPIKey = "YOUR_2FACTOR_API_KEY_HERE"

var countryCodePattern = regexp.MustCompile(`^\+\d{1,4}$`)

var ErrInvalidSettings = errors.New("domain: invalid settings")

// Settings is an immutable snapshot of the operator configuration. A
// request reads one snapshot for its whole lifetime.
type Settings struct {
	APIKey                string           `yaml:"api_key"`
	OTPLength             int              `yaml:"otp_length"`
	OTPExpirySeconds      int              `yaml:"otp_expiry"`
	CountryCode           string           `yaml:"country_code"`
	AllowCountrySelection bool             `yaml:"allow_country_selection"`
	RequireEmail          bool             `yaml:"require_email"`
	RequireName           bool             `yaml:"require_name"`
	OnboardingTiming      OnboardingTiming `yaml:"onboarding_timing"`
	UsernameGeneration    UsernameMode     `yaml:"username_generation"`
	RedirectURL           string           `yaml:"redirect_url"`
	AdminURL              string           `yaml:"admin_url"`
	UserRole              string           `yaml:"user_role"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		OTPLength:          5,
		OTPExpirySeconds:   300,
		CountryCode:        "+91",
		RequireEmail:       true,
		OnboardingTiming:   OnboardingAfter,
		UsernameGeneration: UsernameTruncated,
		AdminURL:           "/admin/",
		UserRole:           "subscriber",
	}
}

// Normalize clamps numeric fields into range and replaces unknown enum
// values with their defaults.
func (s Settings) Normalize() Settings {
	def := DefaultSettings()

	s.APIKey = strings.TrimSpace(s.APIKey)
	s.OTPLength = max(MinOTPLength, min(MaxOTPLength, s.OTPLength))
	s.OTPExpirySeconds = max(MinOTPExpirySecs, min(MaxOTPExpirySecs, s.OTPExpirySeconds))

	s.CountryCode = stripPhone(s.CountryCode)
	if s.CountryCode == "" {
		s.CountryCode = def.CountryCode
	}

	switch s.OnboardingTiming {
	case OnboardingAfter, OnboardingBoth:
	default:
		s.OnboardingTiming = def.OnboardingTiming
	}

	switch s.UsernameGeneration {
	case UsernameTruncated, UsernameFull:
	default:
		s.UsernameGeneration = def.UsernameGeneration
	}

	if s.AdminURL == "" {
		s.AdminURL = def.AdminURL
	}
	if strings.TrimSpace(s.UserRole) == "" {
		s.UserRole = def.UserRole
	}

	return s
}

// Validate reports settings that cannot be repaired by Normalize.
func (s Settings) Validate() error {
	if !countryCodePattern.MatchString(s.CountryCode) {
		return fmt.Errorf("%w: country_code %q must look like +91", ErrInvalidSettings, s.CountryCode)
	}
	return nil
}

// OTPExpiry returns the code lifetime.
func (s Settings) OTPExpiry() time.Duration {
	return time.Duration(s.OTPExpirySeconds) * time.Second
}

// GatewayConfigured reports whether an SMS gateway key is set.
func (s Settings) GatewayConfigured() bool {
	return s.APIKey != "" && s.APIKey != PlaceholderAPIKey
}

// BeforeRequired reports whether onboarding fields must accompany a send.
func (s Settings) BeforeRequired() bool {
	return s.OnboardingTiming == OnboardingBoth
}

// LoginRedirect returns where a user with role should land after login.
func (s Settings) LoginRedirect(role string) string {
	if role == RoleAdministrator && s.AdminURL != "" {
		return s.AdminURL
	}
	if s.RedirectURL != "" {
		return s.RedirectURL
	}
	return "/"
}
