package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSettingsNormalize(t *testing.T) {
	t.Parallel()

	t.Run("clamps numeric bounds", func(t *testing.T) {
		s := Settings{OTPLength: 2, OTPExpirySeconds: 5000}.Normalize()
		require.Equal(t, MinOTPLength, s.OTPLength)
		require.Equal(t, MaxOTPExpirySecs, s.OTPExpirySeconds)
		require.Equal(t, 15*time.Minute, s.OTPExpiry())

		s = Settings{OTPLength: 12, OTPExpirySeconds: 10}.Normalize()
		require.Equal(t, MaxOTPLength, s.OTPLength)
		require.Equal(t, MinOTPExpirySecs, s.OTPExpirySeconds)
	})

	t.Run("unknown enums fall back to defaults", func(t *testing.T) {
		s := Settings{OnboardingTiming: "before", UsernameGeneration: "random"}.Normalize()
		require.Equal(t, OnboardingAfter, s.OnboardingTiming)
		require.Equal(t, UsernameTruncated, s.UsernameGeneration)
	})

	t.Run("country code is stripped", func(t *testing.T) {
		s := Settings{CountryCode: " +4 4"}.Normalize()
		require.Equal(t, "+44", s.CountryCode)
		require.NoError(t, s.Validate())
	})

	t.Run("defaults survive normalize", func(t *testing.T) {
		s := DefaultSettings().Normalize()
		require.Equal(t, DefaultSettings(), s)
		require.NoError(t, s.Validate())
	})
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	s.CountryCode = "91"
	require.ErrorIs(t, s.Validate(), ErrInvalidSettings)

	s.CountryCode = "+12345"
	require.ErrorIs(t, s.Validate(), ErrInvalidSettings)
}

func TestSettingsGatewayConfigured(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	require.False(t, s.GatewayConfigured())

	s.APIKey = PlaceholderAPIKey
	require.False(t, s.GatewayConfigured())

	s.APIKey = "abc-123"
	require.True(t, s.GatewayConfigured())
}

func TestSettingsLoginRedirect(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	require.Equal(t, "/", s.LoginRedirect("subscriber"))
	require.Equal(t, "/admin/", s.LoginRedirect(RoleAdministrator))

	s.RedirectURL = "/welcome"
	require.Equal(t, "/welcome", s.LoginRedirect("subscriber"))
}
