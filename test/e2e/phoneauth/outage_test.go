//go:build integration

package phoneauth_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/phoneauth/pkg/phonesdk"
)

func TestFallbackDuringRedisOutage(t *testing.T) {
	e := setupService(t, defaultSettings, true)
	ctx := t.Context()

	sent, err := e.client.SendOTP(ctx, phonesdk.SendOTPRequest{Phone: "9876543210"})
	require.NoError(t, err)
	code := e.inbox.last(t, sent.Phone)

	require.NoError(t, e.redis.Stop(ctx, nil))

	_, err = e.client.GetReadiness(ctx)
	var apiErr *phonesdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)

	sess, err := e.client.VerifyOTP(ctx, phonesdk.VerifyOTPRequest{
		Phone: "9876543210",
		OTP:   code,
		After: &phonesdk.Onboarding{Name: "Asha"},
	})
	require.NoError(t, err)
	require.True(t, sess.Created)

	// The durable copy is consumed.
	_, err = e.client.VerifyOTP(ctx, phonesdk.VerifyOTPRequest{Phone: "9876543210", OTP: code})
	require.Equal(t, phonesdk.ErrorCodeNoActiveCode, phonesdk.Code(err))
}

func TestOutageWithoutFallback(t *testing.T) {
	e := setupService(t, defaultSettings, false)
	ctx := t.Context()

	require.NoError(t, e.redis.Stop(ctx, nil))

	_, err := e.client.SendOTP(ctx, phonesdk.SendOTPRequest{Phone: "9876543210"})
	require.Equal(t, phonesdk.ErrorCodeUnavailable, phonesdk.Code(err))
}
