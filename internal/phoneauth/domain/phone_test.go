package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		cc   string
		want string
	}{
		{"already international", "+919876543210", "+91", "+919876543210"},
		{"formatting stripped", "+91 (987) 654-3210", "+91", "+919876543210"},
		{"country code without plus", "919876543210", "+91", "+919876543210"},
		{"local number gets default code", "8876543210", "+91", "+918876543210"},
		{"other default code", "2025550123", "+1", "+12025550123"},
		{"empty stays empty", " - ", "+91", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizePhone(tt.raw, tt.cc))
		})
	}
}

func TestValidPhone(t *testing.T) {
	t.Parallel()

	require.True(t, ValidPhone("+919876543210"))
	require.True(t, ValidPhone("+12025550123"))
	require.True(t, ValidPhone("+99919876543210"))
	require.True(t, ValidPhone("+91987654321"), "one digit country code")

	require.False(t, ValidPhone("919876543210"), "missing plus")
	require.False(t, ValidPhone("+9876543210"), "too short")
	require.False(t, ValidPhone("+9999919876543210"), "country code too long")
	require.False(t, ValidPhone("+91987654321a"))
	require.False(t, ValidPhone(""))
}

func TestSplitName(t *testing.T) {
	t.Parallel()

	first, last := SplitName("  Asha Rani Verma ")
	require.Equal(t, "Asha", first)
	require.Equal(t, "Rani Verma", last)

	first, last = SplitName("Cher")
	require.Equal(t, "Cher", first)
	require.Empty(t, last)
}

func TestOnboardingMerge(t *testing.T) {
	t.Parallel()

	before := Onboarding{Email: "old@example.com", Name: "Asha"}
	after := Onboarding{Email: "new@example.com"}

	merged := before.Merge(after)
	require.Equal(t, "new@example.com", merged.Email)
	require.Equal(t, "Asha", merged.Name)
	require.True(t, Onboarding{}.IsZero())
}
