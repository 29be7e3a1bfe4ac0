package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
)

func ptr(s string) *string { return &s }

func TestProfileGet(t *testing.T) {
	h := newHarness(t)
	u := h.register(t, testRawPhone, domain.Onboarding{Name: "Asha Rao"})

	p, err := h.profiles.Get(h.ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "asharao", p.User.Username)
	require.Equal(t, []string{testPhone}, p.Phones)

	_, err = h.profiles.Get(h.ctx, "01J0000000000000000000000")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfileUpdate(t *testing.T) {
	h := newHarness(t)
	u := h.register(t, testRawPhone, domain.Onboarding{Name: "Asha"})
	other := h.register(t, otherPhone, domain.Onboarding{Email: "ravi@example.com"})

	t.Run("name and email", func(t *testing.T) {
		p, err := h.profiles.Update(h.ctx, u.ID, ProfileUpdate{
			Name:  ptr(" Asha Rao "),
			Email: ptr("asha@example.com"),
		})
		require.NoError(t, err)
		require.Equal(t, "Asha Rao", p.User.Name)
		require.Equal(t, "Asha", p.User.FirstName)
		require.Equal(t, "Rao", p.User.LastName)
		require.Equal(t, "asha@example.com", p.User.Email)
		require.Equal(t, []string{testPhone}, p.Phones)
	})

	t.Run("invalid input changes nothing", func(t *testing.T) {
		_, err := h.profiles.Update(h.ctx, u.ID, ProfileUpdate{Email: ptr("nope"), Name: ptr("X")})
		require.ErrorIs(t, err, ErrInvalidEmail)

		_, err = h.profiles.Update(h.ctx, u.ID, ProfileUpdate{Phone: ptr("123")})
		require.ErrorIs(t, err, ErrInvalidPhone)

		p, err := h.profiles.Get(h.ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "Asha Rao", p.User.Name)
	})

	t.Run("conflicts", func(t *testing.T) {
		_, err := h.profiles.Update(h.ctx, u.ID, ProfileUpdate{Phone: ptr(otherPhone)})
		require.ErrorIs(t, err, ErrPhoneConflict)

		_, err = h.profiles.Update(h.ctx, u.ID, ProfileUpdate{Email: ptr("RAVI@example.com")})
		require.ErrorIs(t, err, ErrEmailInUse)

		p, err := h.profiles.Get(h.ctx, other.ID)
		require.NoError(t, err)
		require.Equal(t, []string{otherPhone}, p.Phones)
	})

	t.Run("phone change", func(t *testing.T) {
		p, err := h.profiles.Update(h.ctx, u.ID, ProfileUpdate{Phone: ptr("91 55555 55555")})
		require.NoError(t, err)
		require.Equal(t, []string{"+915555555555"}, p.Phones)
		require.Equal(t, "+915555555555", p.User.Phone)

		_, found, err := h.directory.ResolveUser(h.ctx, testPhone)
		require.NoError(t, err)
		require.False(t, found)

		id, found, err := h.directory.ResolveUser(h.ctx, "+915555555555")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, u.ID, id)
	})

	t.Run("same phone is a no-op", func(t *testing.T) {
		_, err := h.profiles.Update(h.ctx, u.ID, ProfileUpdate{Phone: ptr("+915555555555")})
		require.NoError(t, err)
	})

	t.Run("clear email", func(t *testing.T) {
		p, err := h.profiles.Update(h.ctx, u.ID, ProfileUpdate{Email: ptr("")})
		require.NoError(t, err)
		require.Empty(t, p.User.Email)
	})
}

func TestProfileUpdateEmailConflictKeepsPhone(t *testing.T) {
	h := newHarness(t)
	a := h.register(t, testRawPhone, domain.Onboarding{Email: "a@b.com"})
	b := h.register(t, otherPhone, domain.Onboarding{Email: "b@b.com"})

	_, err := h.profiles.Update(h.ctx, b.ID, ProfileUpdate{
		Phone: ptr("+915555512345"),
		Email: ptr("a@b.com"),
	})
	require.ErrorIs(t, err, ErrEmailInUse)

	p, err := h.profiles.Get(h.ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, []string{otherPhone}, p.Phones)
	require.Equal(t, otherPhone, p.User.Phone)
	require.Equal(t, "b@b.com", p.User.Email)

	_, found, err := h.directory.ResolveUser(h.ctx, "+915555512345")
	require.NoError(t, err)
	require.False(t, found)

	id, found, err := h.directory.ResolveUser(h.ctx, otherPhone)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, b.ID, id)

	// Keeping your own email alongside a phone change is fine.
	p, err = h.profiles.Update(h.ctx, a.ID, ProfileUpdate{
		Phone: ptr("+915555512345"),
		Email: ptr("A@b.com"),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"+915555512345"}, p.Phones)
}

func TestProfileDelete(t *testing.T) {
	h := newHarness(t)
	u := h.register(t, testRawPhone, domain.Onboarding{Name: "Asha"})

	// Warm the cache so the delete has something to purge.
	_, _, err := h.directory.ResolveUser(h.ctx, testPhone)
	require.NoError(t, err)

	require.NoError(t, h.profiles.Delete(h.ctx, u.ID))

	_, err = h.profiles.Get(h.ctx, u.ID)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, found, err := h.directory.ResolveUser(h.ctx, testPhone)
	require.NoError(t, err)
	require.False(t, found)

	require.ErrorIs(t, h.profiles.Delete(h.ctx, u.ID), ErrUserNotFound)

	// The phone is free for a new registration.
	again := h.register(t, testRawPhone, domain.Onboarding{Name: "Asha"})
	require.NotEqual(t, u.ID, again.ID)
	require.Equal(t, "asha", again.Username)
}
