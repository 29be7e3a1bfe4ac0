package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/service"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/sms"
	"github.com/aussiebroadwan/phoneauth/internal/phoneauth/store"
	"github.com/aussiebroadwan/phoneauth/pkg/httpx"
	"github.com/aussiebroadwan/phoneauth/pkg/phonesdk"
	"github.com/aussiebroadwan/phoneauth/pkg/slogx"
)

type errorReply struct {
	err        error
	status     int
	code       string
	message    string
	retryAfter int // seconds, 0 for none
}

// errorReplies is matched in order, so wrapped sentinels come before the
// ones that wrap them.
var errorReplies = []errorReply{
	{err: service.ErrInvalidPhone, status: http.StatusBadRequest, code: phonesdk.ErrorCodeInvalidPhone,
		message: "Invalid phone number."},
	{err: service.ErrEmailRequired, status: http.StatusBadRequest, code: phonesdk.ErrorCodeOnboardingIncomplete,
		message: "Email is required."},
	{err: service.ErrNameRequired, status: http.StatusBadRequest, code: phonesdk.ErrorCodeOnboardingIncomplete,
		message: "Name is required."},
	{err: service.ErrOnboardingIncomplete, status: http.StatusBadRequest, code: phonesdk.ErrorCodeOnboardingIncomplete,
		message: "Invalid email address."},
	{err: service.ErrInvalidEmail, status: http.StatusBadRequest, code: phonesdk.ErrorCodeInvalidEmail,
		message: "Invalid email address."},
	{err: service.ErrRateLimited, status: http.StatusTooManyRequests, code: phonesdk.ErrorCodeRateLimited,
		message: "Please wait before requesting another OTP.", retryAfter: int(service.SendCooldown.Seconds())},
	{err: sms.ErrNotConfigured, status: http.StatusServiceUnavailable, code: phonesdk.ErrorCodeGatewayNotConfigured,
		message: "2Factor API key not configured. Please contact administrator."},
	{err: service.ErrGateway, status: http.StatusBadGateway, code: phonesdk.ErrorCodeGatewayError,
		message: "Failed to send OTP. Please try again."},
	{err: service.ErrCodeRequired, status: http.StatusBadRequest, code: phonesdk.ErrorCodeCodeRequired,
		message: "Please enter OTP."},
	{err: service.ErrNoActiveCode, status: http.StatusBadRequest, code: phonesdk.ErrorCodeNoActiveCode,
		message: "OTP expired or not found. Please request a new one."},
	{err: service.ErrAttemptsExhausted, status: http.StatusTooManyRequests, code: phonesdk.ErrorCodeAttemptsExhausted,
		message: "Too many attempts. Please request a new OTP."},
	{err: service.ErrInvalidCode, status: http.StatusUnauthorized, code: phonesdk.ErrorCodeInvalidCode,
		message: "Invalid OTP. Please try again."},
	{err: service.ErrSourceLockedOut, status: http.StatusTooManyRequests, code: phonesdk.ErrorCodeSourceLockedOut,
		message: "Too many failed attempts from your IP. Please wait 5 minutes and try again.",
		retryAfter: int(service.FailureWindow.Seconds())},
	{err: service.ErrPhoneConflict, status: http.StatusConflict, code: phonesdk.ErrorCodePhoneConflict,
		message: "Phone number is already registered with another account."},
	{err: service.ErrEmailInUse, status: http.StatusConflict, code: phonesdk.ErrorCodeEmailConflict,
		message: "Email address is already registered with another account."},
	{err: service.ErrRegistrationRejected, status: http.StatusBadRequest, code: phonesdk.ErrorCodeRegistrationRejected,
		message: "Registration failed. Please try again or use a different email."},
	{err: service.ErrUsernameExhausted, status: http.StatusInternalServerError, code: phonesdk.ErrorCodeUsernameExhausted,
		message: "Unable to create unique username. Please try again."},
	{err: service.ErrUserNotFound, status: http.StatusNotFound, code: phonesdk.ErrorCodeUserNotFound,
		message: "User not found."},
	{err: store.ErrUnavailable, status: http.StatusServiceUnavailable, code: phonesdk.ErrorCodeUnavailable,
		message: "Service temporarily unavailable. Please try again."},
}

// writeServiceError renders err with its fixed user-facing message.
// Anything unrecognised is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	for _, reply := range errorReplies {
		if !errors.Is(err, reply.err) {
			continue
		}
		if reply.status >= http.StatusInternalServerError {
			log.Error("request failed", "error", err)
		}
		if reply.retryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(reply.retryAfter))
		}
		httpx.WriteError(w, reply.status, reply.code, reply.message)
		return
	}

	log.Error("unexpected error", "error", err)
	httpx.WriteError(w, http.StatusInternalServerError, phonesdk.ErrorCodeServerError, "Something went wrong. Please try again.")
}

func writeBadRequest(w http.ResponseWriter, err error) {
	httpx.WriteError(w, http.StatusBadRequest, phonesdk.ErrorCodeInvalidRequest, err.Error())
}
