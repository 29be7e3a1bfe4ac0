package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/domain"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store"
)

func TestFallbackWhenStoreGoesDown(t *testing.T) {
	h := newHarness(t, withFallback())
	code := h.send(t, testRawPhone, domain.Onboarding{})

	h.mr.Close()

	_, err := h.verify(testRawPhone, wrong(code), "src", domain.Onboarding{})
	require.ErrorIs(t, err, ErrInvalidCode)

	sess, err := h.verify(testRawPhone, code, "src", domain.Onboarding{})
	require.NoError(t, err)
	require.True(t, sess.Created)

	// The durable copy is single use.
	_, err = h.verify(testRawPhone, code, "src", domain.Onboarding{})
	require.ErrorIs(t, err, ErrNoActiveCode)
}

func TestFallbackIssueWhileStoreDown(t *testing.T) {
	h := newHarness(t, withFallback())
	h.mr.Close()

	code := h.send(t, testRawPhone, domain.Onboarding{})

	row, err := h.db.OTPLogins().GetLatestUnverified(h.ctx, testPhone, h.clock.Now())
	require.NoError(t, err)
	require.NotEqual(t, code, row.CodeHash)

	_, err = h.verify(testRawPhone, code, "src", domain.Onboarding{})
	require.NoError(t, err)
}

func TestFallbackExpiry(t *testing.T) {
	h := newHarness(t, withFallback())
	h.mr.Close()

	code := h.send(t, testRawPhone, domain.Onboarding{})
	h.clock.t = h.clock.t.Add(301 * time.Second)

	_, err := h.verify(testRawPhone, code, "src", domain.Onboarding{})
	require.ErrorIs(t, err, ErrNoActiveCode)
}

func TestFallbackConsumedWithLiveCode(t *testing.T) {
	h := newHarness(t, withFallback())
	code := h.send(t, testRawPhone, domain.Onboarding{})

	_, err := h.verify(testRawPhone, code, "src", domain.Onboarding{})
	require.NoError(t, err)

	_, err = h.db.OTPLogins().GetLatestUnverified(h.ctx, testPhone, h.clock.Now())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestStoreDownWithoutFallback(t *testing.T) {
	h := newHarness(t)
	h.mr.Close()

	_, err := h.login.SendOTP(h.ctx, testRawPhone, domain.Onboarding{})
	require.ErrorIs(t, err, store.ErrUnavailable)
	require.Zero(t, h.gateway.sent())

	_, err = h.verify(testRawPhone, "12345", "src", domain.Onboarding{})
	require.ErrorIs(t, err, store.ErrUnavailable)
}
